package mailer

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetRender(t *testing.T) {
	msg, err := PasswordReset("ana@example.com", PasswordResetData{
		Name:      "Ana",
		Link:      "http://localhost:3000/reset-password/tok123",
		ExpiresIn: "1h0m0s",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "Redefinição de senha - Patinhas", msg.Subject)
	assert.Contains(t, msg.HTML, `href="http://localhost:3000/reset-password/tok123"`)
	assert.Contains(t, msg.HTML, "Olá, Ana!")
	assert.Contains(t, msg.Text, "O link expira em 1h0m0s.")
}

func TestPasswordResetDefaultName(t *testing.T) {
	msg, err := PasswordReset("x@example.com", PasswordResetData{Link: "l"})
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "Olá, tutor!")
}

type fakeSES struct {
	input *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	return &sesv2.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSESSend(t *testing.T) {
	fake := &fakeSES{}
	s := &SES{client: fake, from: "no-reply@patinhas.local"}

	err := s.Send(context.Background(), Message{To: "ana@example.com", Subject: "s", HTML: "<p>h</p>", Text: "t"})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "no-reply@patinhas.local", aws.ToString(fake.input.FromEmailAddress))
	assert.Equal(t, []string{"ana@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "s", aws.ToString(fake.input.Content.Simple.Subject.Data))
	assert.Equal(t, "t", aws.ToString(fake.input.Content.Simple.Body.Text.Data))
}
