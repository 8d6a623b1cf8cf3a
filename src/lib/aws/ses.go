package aws

import (
	"context"
	"log"

	"villas/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func GetSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil, err
	}
	return ses.NewFromConfig(cfg), nil
}

// SESMailer delivers mail through Amazon SES when no SMTP relay is configured.
type SESMailer struct {
	client SESAPI
}

func NewSESMailer(client SESAPI) *SESMailer {
	return &SESMailer{client: client}
}

func (m *SESMailer) Send(ctx context.Context, msg *lib.SendMailInput) error {
	out, err := m.client.SendEmail(ctx, sendEmailInput(msg))
	if err != nil {
		log.Printf("Error sending email: %s\n", err.Error())
		return err
	}
	log.Printf("Sent email with id: %s\n", aws.ToString(out.MessageId))
	return nil
}

func sendEmailInput(msg *lib.SendMailInput) *ses.SendEmailInput {
	source := msg.From
	if msg.FromName != "" {
		source = msg.FromName + " <" + msg.From + ">"
	}
	content := &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")}
	body := &types.Body{Text: content}
	if msg.Html {
		body = &types.Body{Html: content}
	}
	input := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	return input
}
