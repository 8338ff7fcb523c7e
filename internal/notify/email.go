package notify

import (
	"fmt"
	"net/smtp"
)

var sendMail = smtp.SendMail

// SMTPSender delivers messages as plain-text email.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

func NewSMTPSender(host string, port int, username, password, from, to string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

func (s *SMTPSender) Notify(subject, body string) error {
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte("To: " + s.to + "\r\n" +
		"From: " + s.from + "\r\n" +
		"Subject: [reshort] " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	return sendMail(addr, auth, s.from, []string{s.to}, msg)
}
