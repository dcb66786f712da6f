package notifier

import (
	"context"
	"log"
)

// LogNotifier writes alerts to the process log instead of sending
// email; used when no SMTP account is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendWithRetry(_ context.Context, subject, _ string, _ int) error {
	log.Printf("[INFO] alert (email disabled): %s", subject)
	return nil
}
