package notifier

import (
	"fmt"
	"strings"

	"TradePulse/internal/config"
	"TradePulse/internal/model"
)

// FormatAlert builds the email subject and body for one alert event.
func FormatAlert(instrument string, ev model.AlertEvent, dec model.Decision, sig model.Signal, cfg config.ResolvedConfig) (subject, body string) {
	subject = fmt.Sprintf("[TradePulse] %s %s | price %.2f | confidence %.1f%%",
		instrument, alertTitle(ev.Kind), ev.Price, sig.Confidence)

	var b strings.Builder
	fmt.Fprintf(&b, "Instrument:  %s\n", instrument)
	fmt.Fprintf(&b, "Time:        %s\n", ev.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Strategy:    %s (%s)\n", cfg.DisplayName, cfg.ProfileName)
	fmt.Fprintf(&b, "Price:       %.2f\n\n", ev.Price)

	fmt.Fprintf(&b, "Signal:      %s (confidence %.1f%%, threshold %.1f%%)\n", sig.Action, sig.Confidence, cfg.ConfidenceThreshold)
	fmt.Fprintf(&b, "Action:      %s (%s)\n", dec.Action, dec.Reason)

	switch ev.Kind {
	case model.AlertOpenLong, model.AlertOpenShort:
		fmt.Fprintf(&b, "Entry:       %.2f\n", dec.Position.EntryPrice)
		fmt.Fprintf(&b, "Take profit: +%.2f%% | Stop loss: -%.2f%%\n", cfg.TakeProfitPct, cfg.StopLossPct)
	case model.AlertClose:
		fmt.Fprintf(&b, "Realized:    %+.2f%%\n", dec.PnLPct)
	case model.AlertDelta:
		fmt.Fprintf(&b, "Price move:  %+.2f%% since last analysis (threshold %.2f%%)\n", ev.Magnitude, cfg.EmailDeltaThreshold)
	}

	return subject, b.String()
}

func alertTitle(kind model.AlertKind) string {
	switch kind {
	case model.AlertOpenLong:
		return "OPEN LONG"
	case model.AlertOpenShort:
		return "OPEN SHORT"
	case model.AlertClose:
		return "CLOSE"
	case model.AlertDelta:
		return "PRICE MOVE"
	default:
		return string(kind)
	}
}
