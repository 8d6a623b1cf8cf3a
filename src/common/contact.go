package common

import (
	"context"
	"fmt"
	"html"
	"log"

	"villas/src/lib"
	"villas/src/models"
	"villas/src/store"
	"villas/src/types"

	"github.com/google/uuid"
)

type Dispatcher interface {
	Dispatch(msg *lib.SendMailInput)
}

type ContactService struct {
	store     store.Store
	mail      Dispatcher
	from      string
	recipient string
}

func NewContactService(s store.Store, d Dispatcher, from, recipient string) *ContactService {
	return &ContactService{store: s, mail: d, from: from, recipient: recipient}
}

// Submit stores the message and queues an email to the property team. Email delivery never fails a submission.
func (c *ContactService) Submit(ctx context.Context, body *types.ContactRequestBody) (*models.ContactSubmission, error) {
	submission := &models.ContactSubmission{
		ID:      uuid.NewString(),
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Message: body.Message,
	}
	if err := c.store.InsertContact(ctx, submission); err != nil {
		log.Printf("[contact] Error saving submission from %s: %s\n", body.Email, err.Error())
		return nil, err
	}
	if c.mail != nil {
		c.mail.Dispatch(&lib.SendMailInput{
			From:     c.from,
			FromName: "Apollo's Hideaway",
			To:       []string{c.recipient},
			ReplyTo:  submission.Email,
			Subject:  fmt.Sprintf("New Contact Form Submission from %s", submission.Name),
			Body:     contactEmailBody(submission),
			Html:     true,
		})
	}
	return submission, nil
}

func contactEmailBody(s *models.ContactSubmission) string {
	phone := "Not provided"
	if s.Phone != nil && *s.Phone != "" {
		phone = *s.Phone
	}
	return fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #2D5F4F;">New Contact Form Submission</h2>
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Phone:</strong> %s</p>
    <p><strong>Message:</strong></p>
    <p>%s</p>
    <p style="font-size: 12px; color: #666;">This email was sent from the Apollo's Hideaway contact form.</p>
  </body>
</html>`,
		html.EscapeString(s.Name),
		html.EscapeString(s.Email),
		html.EscapeString(phone),
		html.EscapeString(s.Message),
	)
}
