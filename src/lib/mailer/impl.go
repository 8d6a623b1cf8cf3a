package mailer

import (
	"context"
	"log"
	"sync"
	"time"

	"villas/src/lib"
)

type Notifier interface {
	Send(ctx context.Context, msg *lib.SendMailInput) error
}

// SMTPNotifier delivers through the configured SMTP relay.
type SMTPNotifier struct {
	cfg lib.SMTPConfig
}

func NewSMTPNotifier(cfg lib.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) Send(ctx context.Context, msg *lib.SendMailInput) error {
	c, err := lib.GetSMTPClient(n.cfg)
	if err != nil {
		return err
	}
	m, err := lib.NewMessage(msg)
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, m)
}

// LogNotifier is used when no SMTP relay is configured.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, msg *lib.SendMailInput) error {
	log.Printf("[mailer] to=%v subject=%q\n", msg.To, msg.Subject)
	return nil
}

// Sink sends mail in the background. Delivery errors are logged and dropped.
type Sink struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewSink(n Notifier) *Sink {
	return &Sink{notifier: n, timeout: 30 * time.Second}
}

func (s *Sink) Dispatch(msg *lib.SendMailInput) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[mailer] Recovered while sending %q: %v\n", msg.Subject, r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.notifier.Send(ctx, msg); err != nil {
			log.Printf("[mailer] Failed to send %q to %v: %s\n", msg.Subject, msg.To, err.Error())
			return
		}
		log.Printf("[mailer] Sent %q to %v\n", msg.Subject, msg.To)
	}()
}

// Wait blocks until in-flight sends finish. Used on shutdown.
func (s *Sink) Wait() {
	s.wg.Wait()
}
