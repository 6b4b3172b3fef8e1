package postgres_test

import (
	"context"
	"testing"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var carColumns = []string{
	"placa", "nome", "ano", "tipo_categoria", "preco_diaria", "imagem_url", "status_carro", "quilometragem", "num_manutencao",
}

func TestCarRepository_GetByPlate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM carro c").
			WithArgs("ABC1D23").
			WillReturnRows(sqlmock.NewRows(carColumns).
				AddRow("ABC1D23", "Onix", 2022, "HATCH", "120.00", nil, "MANUTENCAO", 35000, 4))

		car, err := repo.GetByPlate(ctx, "ABC1D23")
		require.NoError(t, err)
		assert.Equal(t, "Onix", car.Name)
		assert.Equal(t, int32(2022), car.Year)
		assert.Equal(t, domain.CarStatusMaintenance, car.Status)
		require.NotNil(t, car.MaintenanceID)
		assert.Equal(t, int32(4), *car.MaintenanceID)
		assert.Nil(t, car.ImageURL)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM carro c").
			WithArgs("ZZZ0000").
			WillReturnRows(sqlmock.NewRows(carColumns))

		_, err := repo.GetByPlate(ctx, "ZZZ0000")
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
	})
}

func TestCarRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("Filtered by status", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM carro c (.+) WHERE c.status_carro = \\$1 ORDER BY c.nome").
			WithArgs(domain.CarStatusAvailable).
			WillReturnRows(sqlmock.NewRows(carColumns).
				AddRow("AAA1A11", "Argo", 2021, "HATCH", "110.00", "http://img/argo.png", "DISPONIVEL", nil, nil).
				AddRow("BBB2B22", "Compass", 2023, "SUV", "250.00", nil, "DISPONIVEL", 12000, nil))

		cars, err := repo.List(ctx, domain.CarStatusAvailable)
		require.NoError(t, err)
		require.Len(t, cars, 2)
		assert.Equal(t, "Argo", cars[0].Name)
		require.NotNil(t, cars[0].ImageURL)
		assert.Nil(t, cars[1].MaintenanceID)
	})

	t.Run("All cars", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM carro c (.+) ORDER BY c.nome").
			WithArgs().
			WillReturnRows(sqlmock.NewRows(carColumns))

		cars, err := repo.List(ctx, "")
		assert.NoError(t, err)
		assert.Empty(t, cars)
		assert.NotNil(t, cars)
	})
}

func TestCarRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)
	ctx := context.Background()

	t.Run("With maintenance", func(t *testing.T) {
		maintenanceID := int32(12)
		mock.ExpectExec("UPDATE carro SET status_carro = \\$1, num_manutencao = \\$2 WHERE placa = \\$3").
			WithArgs(domain.CarStatusMaintenance, int32(12), "ABC1D23").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "ABC1D23", domain.CarStatusMaintenance, &maintenanceID)
		assert.NoError(t, err)
	})

	t.Run("Status only", func(t *testing.T) {
		mock.ExpectExec("UPDATE carro SET status_carro = \\$1 WHERE placa = \\$2").
			WithArgs(domain.CarStatusAvailable, "ABC1D23").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "ABC1D23", domain.CarStatusAvailable, nil)
		assert.NoError(t, err)
	})

	t.Run("Unknown car", func(t *testing.T) {
		mock.ExpectExec("UPDATE carro").
			WithArgs(domain.CarStatusAvailable, "NOPE000").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "NOPE000", domain.CarStatusAvailable, nil)
		assert.ErrorIs(t, err, domain.ErrCarNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepository_ListCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewCarRepository(db)

	mock.ExpectQuery("SELECT tipo, preco_diaria").
		WillReturnRows(sqlmock.NewRows([]string{"tipo", "preco_diaria", "descricao"}).
			AddRow("HATCH", "110.00", "Compactos").
			AddRow("SUV", "250.00", ""))

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "SUV", categories[1].Type)
	assert.Equal(t, "250.00", categories[1].DailyRate.StringFixed(2))
}
