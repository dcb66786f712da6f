package notifier

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"TradePulse/internal/config"
	"TradePulse/internal/model"
)

func TestSend_BuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	n := NewEmailNotifier("smtp.example.com", 587, "bot@example.com", "secret", "trader@example.com")
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	if err := n.Send("subject line", "body text"); err != nil {
		t.Fatal(err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "bot@example.com" {
		t.Errorf("from = %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "trader@example.com" {
		t.Errorf("to = %v", gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: subject line\r\n") {
		t.Errorf("message missing subject header:\n%s", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody text") {
		t.Errorf("message missing body separator:\n%s", msg)
	}
}

func TestSendWithRetry_EventualSuccess(t *testing.T) {
	attempts := 0
	n := NewEmailNotifier("smtp.example.com", 587, "a@b", "pw", "c@d")
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient failure")
		}
		return nil
	}

	if err := n.SendWithRetry(context.Background(), "s", "b", 3); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	n := NewEmailNotifier("smtp.example.com", 587, "a@b", "pw", "c@d")
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("always failing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := n.SendWithRetry(ctx, "s", "b", 5); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}

func TestFormatAlert_Close(t *testing.T) {
	cfg, err := config.Resolve("balanced", nil)
	if err != nil {
		t.Fatal(err)
	}
	ev := model.AlertEvent{
		Kind:      model.AlertClose,
		Magnitude: -1.8,
		Price:     2456.5,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	dec := model.Decision{
		Action: model.ActionClose,
		Reason: "stop-loss triggered",
		Price:  2456.5,
		PnLPct: -1.8,
	}
	sig := model.Signal{Action: model.ActionHold, Confidence: 40}

	subject, body := FormatAlert("ETH-USDT-SWAP", ev, dec, sig, cfg)
	if !strings.Contains(subject, "ETH-USDT-SWAP CLOSE") {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(body, "Realized:    -1.80%") {
		t.Errorf("body missing realized pnl:\n%s", body)
	}
	if !strings.Contains(body, "stop-loss triggered") {
		t.Errorf("body missing reason:\n%s", body)
	}
}
