package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/patinhas/adoption-api/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the driver from MAIL_DRIVER.
func New(ctx context.Context, cfg *config.Config) (Mailer, error) {
	switch cfg.MailDriver {
	case "ses":
		return NewSES(ctx, cfg)
	case "log", "":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SES struct {
	client sesAPI
	from   string
}

func NewSES(ctx context.Context, cfg *config.Config) (*SES, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &SES{client: sesv2.NewFromConfig(awsCfg), from: cfg.MailFrom}, nil
}

func (s *SES) Send(ctx context.Context, msg Message) error {
	body := &types.Body{
		Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer only logs outgoing mail. Used in development.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	slog.Info("mail not sent (log driver)", "to", msg.To, "subject", msg.Subject, "body", msg.Text)
	return nil
}
