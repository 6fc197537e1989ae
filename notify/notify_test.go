package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/models"
)

type fakeSender struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeSender) Send(email *mail.SGMailV3) (*mailResponse, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &mailResponse{StatusCode: f.status}, nil
}

func testNotifier(sender mailSender) *SendGridNotifier {
	n := NewSendGridNotifier("key", "orders@rashtra.example", "works@city.example")
	n.sender = sender
	return n
}

func TestSendGridNotifier_WorkOrder(t *testing.T) {
	sender := &fakeSender{status: 202}
	n := testNotifier(sender)

	err := n.WorkOrder(context.Background(), models.Complaint{ID: "c-9", Address: "Ring Road", Severity: models.SeverityHigh, SeverityScore: 8.8})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Repair order c-9 - High severity", sender.sent[0].Subject)
	assert.Equal(t, "works@city.example", sender.sent[0].Personalizations[0].To[0].Address)
}

func TestSendGridNotifier_Failures(t *testing.T) {
	err := testNotifier(&fakeSender{status: 401}).WorkOrder(context.Background(), models.Complaint{ID: "c-1"})
	assert.EqualError(t, err, "sendgrid error: status 401")

	err = testNotifier(&fakeSender{err: errors.New("dial tcp")}).WorkOrder(context.Background(), models.Complaint{ID: "c-1"})
	assert.EqualError(t, err, "dial tcp")
}

func TestFromConfig(t *testing.T) {
	assert.IsType(t, Noop{}, FromConfig(&config.Config{}))
	assert.IsType(t, &SendGridNotifier{}, FromConfig(&config.Config{
		SendGridAPIKey: "key",
		WorkOrderFrom:  "a@example.com",
		WorkOrderTo:    "b@example.com",
	}))
}
