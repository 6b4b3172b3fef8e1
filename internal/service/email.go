package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/utils"
)

// mailSender is the part of the SendGrid client used here.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client     mailSender
	fromEmail  string
	fromName   string
	fleetEmail string
}

func NewEmailService(apiKey, fromEmail, fromName, fleetEmail string) EmailService {
	return &emailService{
		client:     sendgrid.NewSendClient(apiKey),
		fromEmail:  fromEmail,
		fromName:   fromName,
		fleetEmail: fleetEmail,
	}
}

func (s *emailService) SendOverdueDigest(ctx context.Context, day time.Time, overdue []OverdueProjection) error {
	if len(overdue) == 0 {
		return nil
	}

	subject, plain, htmlBody := composeOverdueDigest(day, overdue)
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("Frota", s.fleetEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, htmlBody)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send overdue digest: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.InfoContext(ctx, "Overdue digest sent", "to", s.fleetEmail, "rentals", len(overdue))
	return nil
}

// logEmailService stands in when no SendGrid key is configured.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendOverdueDigest(ctx context.Context, day time.Time, overdue []OverdueProjection) error {
	for _, o := range overdue {
		logger.WarnContext(ctx, "Overdue rental",
			"rentalID", o.RentalID,
			"plate", o.Plate,
			"cpf", o.CustomerCPF,
			"expectedReturn", utils.FormatDate(o.ExpectedReturnDate),
			"daysLate", o.DaysLate,
			"projectedFee", o.ProjectedFee.StringFixed(2),
		)
	}
	return nil
}

func composeOverdueDigest(day time.Time, overdue []OverdueProjection) (subject, plain, htmlBody string) {
	subject = fmt.Sprintf("Locações em atraso em %s (%d)", utils.FormatDate(day), len(overdue))

	var p, h strings.Builder
	fmt.Fprintf(&p, "Locações em atraso em %s:\n\n", utils.FormatDate(day))
	h.WriteString("<html><body><h2>Locações em atraso</h2><table>")
	h.WriteString("<tr><th>Locação</th><th>Placa</th><th>Cliente</th><th>Devolução prevista</th><th>Dias</th><th>Multa projetada</th></tr>")
	for _, o := range overdue {
		expected := utils.FormatDate(o.ExpectedReturnDate)
		fee := o.ProjectedFee.StringFixed(2)
		fmt.Fprintf(&p, "#%d  %s  %s  prevista %s  %d dia(s)  R$ %s\n",
			o.RentalID, o.Plate, o.CustomerCPF, expected, o.DaysLate, fee)
		fmt.Fprintf(&h, "<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>R$ %s</td></tr>",
			o.RentalID, html.EscapeString(o.Plate), html.EscapeString(o.CustomerCPF), expected, o.DaysLate, fee)
	}
	h.WriteString("</table></body></html>")
	return subject, p.String(), h.String()
}
