package notifier

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"
)

// EmailNotifier sends alert messages over SMTP.
type EmailNotifier struct {
	Server   string
	Port     int
	Sender   string
	Password string
	Receiver string

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailNotifier creates a notifier for the given SMTP account.
func NewEmailNotifier(server string, port int, sender, password, receiver string) *EmailNotifier {
	return &EmailNotifier{
		Server:   server,
		Port:     port,
		Sender:   sender,
		Password: password,
		Receiver: receiver,
		send:     smtp.SendMail,
	}
}

// Send delivers one message to the configured receiver.
func (n *EmailNotifier) Send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.Server, n.Port)
	auth := smtp.PlainAuth("", n.Sender, n.Password, n.Server)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.Sender)
	fmt.Fprintf(&msg, "To: %s\r\n", n.Receiver)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := n.send(addr, auth, n.Sender, []string{n.Receiver}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (n *EmailNotifier) SendWithRetry(ctx context.Context, subject, body string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(subject, body); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] email send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
