package mail

import (
	"io"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	gomail "gopkg.in/gomail.v2"

	"github.com/lrnselfreliance/wardreport/log"
)

// Config carries everything needed to deliver the report by SMTP.
type Config struct {
	Server   string
	Port     int
	Username string
	Password string
	From     string
}

// Sender lets tests substitute the SMTP dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// CheckAddresses validates every recipient before any SMTP work happens.
func CheckAddresses(addresses []string) error {
	if len(addresses) == 0 {
		return errors.New("no recipient addresses provided")
	}
	for _, address := range addresses {
		if _, err := mail.ParseAddress(address); err != nil {
			return errors.Wrapf(err, "invalid recipient address %q", address)
		}
	}
	return nil
}

// NewMessage builds the report email: a short plain-text body with the
// rendered report attached as a dated text file.
func NewMessage(cfg Config, recipients []string, reportText string) *gomail.Message {
	date := time.Now().Format("2006-01-02")

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", "Ward Report "+date)
	m.SetBody("text/plain", "The ward report is attached.\n\n"+reportText)
	m.Attach("ward_report_"+date+".txt", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.WriteString(w, reportText)
		return err
	}))
	return m
}

// SendReport delivers the rendered report to every recipient.
func SendReport(cfg Config, sender Sender, recipients []string, reportText string) error {
	if err := CheckAddresses(recipients); err != nil {
		return err
	}
	if cfg.Server == "" {
		return errors.New("SMTP_SERVER must be set to email the report")
	}
	if cfg.From == "" {
		return errors.New("EMAIL_FROM must be set to email the report")
	}

	if sender == nil {
		sender = gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	}

	m := NewMessage(cfg, recipients, reportText)
	if err := sender.DialAndSend(m); err != nil {
		return errors.Wrap(err, "could not send report email")
	}

	log.Mail.WithField("recipients", len(recipients)).Info("Report emailed")
	return nil
}
