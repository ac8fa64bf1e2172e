package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendEmailWithoutMailerReturnsError(t *testing.T) {
	mailer = nil

	err := SendEmail("applicant@example.com", "subject", "body")
	require.Error(t, err)
	require.Contains(t, err.Error(), "mailer is not initialized")
}

func TestInitializeMailerFallsBackToPort25(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("SMTP_USER", "noreply@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")

	InitializeMailer()

	d := GetMailer()
	require.NotNil(t, d)
	require.Equal(t, "smtp.example.com", d.Host)
	require.Equal(t, 25, d.Port)
}
