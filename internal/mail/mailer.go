// Package mail is the notification collaborator: order confirmations,
// operator alerts and contact-form messages over SMTP. Delivery
// failures are advisory; callers log them and carry on.
package mail

import (
	"github.com/wneessen/go-mail"
)

type Message struct {
	Subject string
	Body    string
	From    string
	To      []string
}

type Notifier interface {
	Send(Message) error
}

// SMTPMailer sends through an SMTP relay via go-mail.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password}
}

func (m *SMTPMailer) Send(msg Message) error {
	mm := mail.NewMsg()
	if err := mm.From(msg.From); err != nil {
		return err
	}
	if err := mm.To(msg.To...); err != nil {
		return err
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSend(mm)
}
