package email

// Provider sends notification emails.
type Provider interface {
	Send(to, subject, body string) error
}

// NoopProvider swallows emails. Used in tests and when SMTP is not
// configured.
type NoopProvider struct{}

func (NoopProvider) Send(to, subject, body string) error { return nil }
