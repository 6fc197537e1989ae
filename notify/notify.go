// Package notify tells the works department about repair orders.
package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/models"
	templates "github.com/rashtra/rashtra-api/templates/html"
)

// WorkOrderNotifier is told when workers are assigned to a complaint
type WorkOrderNotifier interface {
	WorkOrder(ctx context.Context, complaint models.Complaint) error
}

// Noop drops every notification
type Noop struct{}

// WorkOrder implements WorkOrderNotifier
func (Noop) WorkOrder(context.Context, models.Complaint) error { return nil }

// mailSender is the part of the SendGrid client used here
type mailSender interface {
	Send(email *mail.SGMailV3) (*mailResponse, error)
}

type mailResponse struct {
	StatusCode int
	Body       string
}

type sendgridSender struct {
	apiKey string
}

func (s sendgridSender) Send(email *mail.SGMailV3) (*mailResponse, error) {
	resp, err := sendgrid.NewSendClient(s.apiKey).Send(email)
	if err != nil {
		return nil, err
	}
	return &mailResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// SendGridNotifier emails work orders through SendGrid
type SendGridNotifier struct {
	From   *mail.Email
	To     *mail.Email
	sender mailSender
}

// NewSendGridNotifier returns a notifier sending from one address to another
func NewSendGridNotifier(apiKey, from, to string) *SendGridNotifier {
	return &SendGridNotifier{
		From:   mail.NewEmail("Rashtra Road Repairs", from),
		To:     mail.NewEmail("Works Department", to),
		sender: sendgridSender{apiKey: apiKey},
	}
}

// FromConfig returns a SendGrid notifier when a key and both addresses are
// configured, Noop otherwise
func FromConfig(conf *config.Config) WorkOrderNotifier {
	if conf.SendGridAPIKey == "" || conf.WorkOrderFrom == "" || conf.WorkOrderTo == "" {
		zap.S().Infow("work order emails disabled")
		return Noop{}
	}
	return NewSendGridNotifier(conf.SendGridAPIKey, conf.WorkOrderFrom, conf.WorkOrderTo)
}

// WorkOrder sends the work order for complaint
func (n *SendGridNotifier) WorkOrder(ctx context.Context, complaint models.Complaint) error {
	data := templates.WorkOrderEmailData{
		ComplaintID: complaint.ID,
		Address:     complaint.Address,
		Latitude:    complaint.Latitude,
		Longitude:   complaint.Longitude,
		Severity:    string(complaint.Severity),
		Score:       complaint.SeverityScore,
		Description: complaint.Description,
		ImageURL:    complaint.ImageURL,
	}
	subject := templates.WorkOrderSubject(data)
	message := mail.NewSingleEmail(n.From, subject, n.To,
		templates.RenderWorkOrderPlainText(data),
		templates.RenderWorkOrderEmail(data),
	)

	response, err := n.sender.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send work order", "error", err, "complaint", complaint.ID)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "complaint", complaint.ID)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("work order sent", "complaint", complaint.ID, "to", n.To.Address)
	return nil
}
