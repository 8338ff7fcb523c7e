package notify

import (
	"reshort/internal/config"
	"reshort/internal/logger"

	"go.uber.org/zap"
)

// Notifier delivers a human-readable message to an external channel. Sends
// are best-effort; callers never treat a failed send as their own failure.
type Notifier interface {
	Notify(subject, body string) error
}

type nopNotifier struct{}

var Nop Notifier = &nopNotifier{}

func (n *nopNotifier) Notify(subject, body string) error {
	return nil
}

// Multi fans a message out to every sink, logging and swallowing individual
// failures so one dead channel cannot silence the rest.
type Multi struct {
	sinks []Notifier
}

func NewMulti(sinks ...Notifier) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Notify(subject, body string) error {
	for _, sink := range m.sinks {
		if err := sink.Notify(subject, body); err != nil {
			logger.Log.Warn("notification send failed",
				zap.String("subject", subject),
				zap.Error(err))
		}
	}

	return nil
}

// FromConfig wires up every sink the config enables. With nothing configured
// the result is a no-op notifier.
func FromConfig(cfg *config.Config) Notifier {
	var sinks []Notifier

	if cfg.DiscordWebhookURL != "" {
		sinks = append(sinks, NewDiscordSender(cfg.DiscordWebhookURL))
	}

	if cfg.SMTPHost != "" && cfg.AlertTo != "" {
		sinks = append(sinks, NewSMTPSender(
			cfg.SMTPHost, cfg.SMTPPort,
			cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.AlertFrom, cfg.AlertTo))
	}

	if len(sinks) == 0 {
		return Nop
	}

	return NewMulti(sinks...)
}
