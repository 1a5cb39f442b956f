package mail

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// Sender delivers HTML mail over SMTP. A Sender with no host is disabled and
// silently drops messages, so callers never need to branch.
type Sender struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func New(host string, port int, user, password, from string) *Sender {
	if port == 0 {
		port = 587
	}
	if strings.TrimSpace(from) == "" {
		from = user
	}
	return &Sender{
		host:     strings.TrimSpace(host),
		port:     port,
		user:     user,
		password: password,
		from:     from,
	}
}

// Enabled reports whether SMTP is configured.
func (s *Sender) Enabled() bool {
	return s != nil && s.host != ""
}

// Send delivers one HTML message. Disabled senders return nil.
func (s *Sender) Send(to, subject, htmlBody string) error {
	if !s.Enabled() {
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("mail: empty recipient")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.user, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
