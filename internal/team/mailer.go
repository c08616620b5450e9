// AngelaMos | 2026
// mailer.go

package team

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Mailer delivers invitation emails. The service only needs this one
// call, so tests swap in a recorder.
type Mailer interface {
	SendInvitation(ctx context.Context, email, agencyName, acceptURL string) error
}

type resendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer returns a Resend-backed mailer, or a no-op one when
// no API key is configured (local development).
func NewResendMailer(apiKey, from string) Mailer {
	if apiKey == "" {
		return noopMailer{}
	}
	return &resendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *resendMailer) SendInvitation(
	ctx context.Context,
	email, agencyName, acceptURL string,
) error {
	subject := fmt.Sprintf("You've been invited to join %s", agencyName)

	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #1e293b; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
    <h1 style="margin: 0;">Agency Invitation</h1>
  </div>
  <div style="padding: 20px; background: #f9f9f9; border-radius: 0 0 8px 8px;">
    <p>You have been invited to join <strong>%s</strong>.</p>
    <p>Sign in with this email address and the invitation will be applied to your account.</p>
    <p><a href="%s" style="display: inline-block; background: #2563eb; color: white; padding: 10px 20px; border-radius: 4px; text-decoration: none;">Accept invitation</a></p>
    <hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
    <p style="color: #999; font-size: 12px;">If you weren't expecting this invitation you can ignore this email.</p>
  </div>
</div>`, agencyName, acceptURL)

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: subject,
		Html:    html,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}

	return nil
}

type noopMailer struct{}

func (noopMailer) SendInvitation(
	_ context.Context,
	_, _, _ string,
) error {
	return nil
}
