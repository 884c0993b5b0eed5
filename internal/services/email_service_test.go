package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"memberhub/internal/models"
)

type capturedMail struct {
	from string
	to   []string
	raw  string
}

func captureSender(out *[]capturedMail, err error) gomail.SendFunc {
	return func(from string, to []string, msg io.WriterTo) error {
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if _, werr := msg.WriteTo(&buf); werr != nil {
			return werr
		}
		*out = append(*out, capturedMail{from: from, to: to, raw: buf.String()})
		return nil
	}
}

func TestEmailService_SendOTP(t *testing.T) {
	var sent []capturedMail
	svc := newEmailServiceWithSender("noreply@memberhub.test", captureSender(&sent, nil))

	require.NoError(t, svc.SendOTP(context.Background(), "a@b.com", "482913", models.PurposeAdminRegistration, 10*time.Minute))
	require.Len(t, sent, 1)
	assert.Equal(t, "noreply@memberhub.test", sent[0].from)
	assert.Equal(t, []string{"a@b.com"}, sent[0].to)
	assert.Contains(t, sent[0].raw, "482913")
	assert.Contains(t, sent[0].raw, "10 minutes")
}

func TestEmailService_EscapesUserInput(t *testing.T) {
	var sent []capturedMail
	svc := newEmailServiceWithSender("noreply@memberhub.test", captureSender(&sent, nil))

	require.NoError(t, svc.SendAdminRejected(context.Background(), "a@b.com", "<script>x</script>"))
	require.Len(t, sent, 1)
	assert.NotContains(t, sent[0].raw, "<script>")
}

func TestEmailService_TransportError(t *testing.T) {
	var sent []capturedMail
	svc := newEmailServiceWithSender("noreply@memberhub.test", captureSender(&sent, errors.New("535 auth failed")))

	err := svc.SendAdminApproved(context.Background(), "a@b.com", "bob1", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 auth failed")
}

func TestEmailService_CanceledContext(t *testing.T) {
	var sent []capturedMail
	svc := newEmailServiceWithSender("noreply@memberhub.test", captureSender(&sent, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.SendMemberStatus(ctx, "a@b.com", "ACM-JD-1-0001", models.MemberApproved)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sent)
}
