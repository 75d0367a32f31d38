package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripstack/travel-service/reservation/internal/notify"
)

func newMailer(t *testing.T) *notify.Mailer {
	t.Helper()
	m, err := notify.NewMailer(notify.Config{Host: "localhost", Port: 2525, From: "bookings@tripstack.io"}, zap.NewExample())
	require.NoError(t, err)
	return m
}

func TestMailer_Send_UnknownTemplate(t *testing.T) {
	m := newMailer(t)

	err := m.Send(context.Background(), "laura@example.com", "Laura Jimenez", "no-such-template")
	require.EqualError(t, err, `unknown mail template "no-such-template"`)
}

func TestMailer_Send_BadRecipient(t *testing.T) {
	m := newMailer(t)

	err := m.Send(context.Background(), "not-an-address", "Laura Jimenez", "reservation")
	require.Error(t, err)
}
