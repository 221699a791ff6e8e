package notification

import "basegraph.app/roster/core/config"

// NewTransport picks the delivery backend named by cfg.Transport.
// Anything other than "smtp" logs messages instead of sending them.
func NewTransport(cfg config.EmailConfig) Transport {
	if !cfg.SMTPEnabled() {
		return NewLogTransport()
	}
	return NewSMTPTransport(SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPass,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	})
}
