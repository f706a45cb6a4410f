package service

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"snap/internal/config"
)

// ErrNotifierNotConfigured is returned by a Notifier whose delivery
// channel is missing credentials. Callers treat it as "delivery not
// attempted", never as a hard failure.
var ErrNotifierNotConfigured = errors.New("notifier not configured")

// Notifier delivers a text message to a phone number, best-effort.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// TwilioNotifier sends messages over Twilio's WhatsApp channel.
// A zero-credential notifier is valid and reports ErrNotifierNotConfigured
// on every send, so issuance flows keep working without Twilio set up.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioNotifier creates a TwilioNotifier from configuration.
func NewTwilioNotifier(cfg config.TwilioConfig) *TwilioNotifier {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.WhatsAppFrom == "" {
		return &TwilioNotifier{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioNotifier{client: client, from: cfg.WhatsAppFrom}
}

// Send delivers message to phone via WhatsApp.
func (n *TwilioNotifier) Send(ctx context.Context, phone, message string) error {
	if n.client == nil {
		return ErrNotifierNotConfigured
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + phone)
	params.SetFrom(n.from)
	params.SetBody(message)

	_, err := n.client.Api.CreateMessage(params)
	return err
}

var _ Notifier = (*TwilioNotifier)(nil)
