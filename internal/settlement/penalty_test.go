package settlement

import (
	"testing"
	"time"

	"carcompany-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Equal(t, expected, actual.StringFixed(2))
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func int32Ptr(v int32) *int32 {
	return &v
}

func TestParseLateFeePolicy(t *testing.T) {
	tests := []struct {
		in       string
		expected LateFeePolicy
		wantErr  bool
	}{
		{"", LateFeeFlat, false},
		{"flat", LateFeeFlat, false},
		{"TIERED", LateFeeTiered, false},
		{" tiered ", LateFeeTiered, false},
		{"progressive", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseLateFeePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestLateReturnFine(t *testing.T) {
	expected := date("2024-03-10")
	rate := money("100.00")

	tests := []struct {
		name     string
		policy   LateFeePolicy
		returned string
		amount   string
		daysLate int
		charged  bool
	}{
		{"Early return", LateFeeFlat, "2024-03-08", "0.00", 0, false},
		{"On time", LateFeeTiered, "2024-03-10", "0.00", 0, false},
		{"Flat 2 days", LateFeeFlat, "2024-03-12", "100.00", 2, true},
		{"Flat 8 days", LateFeeFlat, "2024-03-18", "400.00", 8, true},
		{"Tiered 3 days", LateFeeTiered, "2024-03-13", "150.00", 3, true},
		{"Tiered 4 days", LateFeeTiered, "2024-03-14", "400.00", 4, true},
		{"Tiered 7 days", LateFeeTiered, "2024-03-17", "700.00", 7, true},
		{"Tiered 8 days", LateFeeTiered, "2024-03-18", "1200.00", 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fine, daysLate, ok := LateReturnFine(tt.policy, expected, date(tt.returned), rate)
			assert.Equal(t, tt.charged, ok)
			assert.Equal(t, tt.daysLate, daysLate)
			assertMoney(t, tt.amount, fine.Amount)
			if ok {
				assert.Equal(t, domain.FineLateReturn, fine.Type)
				assert.Equal(t, domain.ReasonLateReturn, fine.ReasonCode)
				require.NotNil(t, fine.Reference)
			}
		})
	}

	t.Run("Reference counts days", func(t *testing.T) {
		fine, _, ok := LateReturnFine(LateFeeFlat, expected, date("2024-03-15"), rate)
		require.True(t, ok)
		assert.Equal(t, "5 dias", *fine.Reference)
	})

	t.Run("Five days late at 200 per day", func(t *testing.T) {
		flat, _, _ := LateReturnFine(LateFeeFlat, expected, date("2024-03-15"), money("200.00"))
		tiered, _, _ := LateReturnFine(LateFeeTiered, expected, date("2024-03-15"), money("200.00"))
		assertMoney(t, "500.00", flat.Amount)
		assertMoney(t, "1000.00", tiered.Amount)
	})
}

func TestFuelFine(t *testing.T) {
	t.Run("Full tank", func(t *testing.T) {
		_, ok := FuelFine(true)
		assert.False(t, ok)
	})

	t.Run("Tank not full", func(t *testing.T) {
		fine, ok := FuelFine(false)
		assert.True(t, ok)
		assertMoney(t, "100.00", fine.Amount)
		assert.Equal(t, domain.FineFuelNotFull, fine.Type)
		assert.Equal(t, "TANQUE", fine.ReasonCode)
		assert.Nil(t, fine.Reference)
	})
}

func TestDamageFine(t *testing.T) {
	t.Run("No damage", func(t *testing.T) {
		_, ok := DamageFine(decimal.Zero)
		assert.False(t, ok)
	})

	t.Run("Damage rounding to zero cents is not charged", func(t *testing.T) {
		_, ok := DamageFine(ParseDamageValue("0.004"))
		assert.False(t, ok)
	})

	t.Run("Damage charged as assessed", func(t *testing.T) {
		fine, ok := DamageFine(money("350.5"))
		assert.True(t, ok)
		assertMoney(t, "350.50", fine.Amount)
		assert.Equal(t, domain.FineVehicleDamage, fine.Type)
		assert.Equal(t, "DANO", fine.ReasonCode)
		require.NotNil(t, fine.Reference)
		assert.Equal(t, "Valor danos: R$ 350.50", *fine.Reference)
	})
}

func TestParseDamageValue(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", "0.00"},
		{"0", "0.00"},
		{"350.5", "350.50"},
		{" 120 ", "120.00"},
		{"12,5", "12.50"},
		{"abc", "0.00"},
		{"-10", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assertMoney(t, tt.expected, ParseDamageValue(tt.raw))
		})
	}
}

func TestMileageFine(t *testing.T) {
	t.Run("Excess mileage", func(t *testing.T) {
		fine, ok := MileageFine(int32Ptr(1200), int32Ptr(1000))
		require.True(t, ok)
		assertMoney(t, "100.00", fine.Amount)
		assert.Equal(t, domain.FineExcessMileage, fine.Type)
		assert.Equal(t, "KM_EXC", fine.ReasonCode)
		assert.Equal(t, "200 km excedentes", *fine.Reference)
	})

	t.Run("Within allowance", func(t *testing.T) {
		_, ok := MileageFine(int32Ptr(900), int32Ptr(1000))
		assert.False(t, ok)
	})

	t.Run("No expected mileage on file", func(t *testing.T) {
		_, ok := MileageFine(int32Ptr(5000), nil)
		assert.False(t, ok)
	})

	t.Run("No reading", func(t *testing.T) {
		_, ok := MileageFine(nil, int32Ptr(1000))
		assert.False(t, ok)
	})
}
