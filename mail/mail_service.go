package mail

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const (
	smtpServer     = "smtp.gmail.com"
	smtpServerPort = 587
)

// Service sends transactional mail over SMTP. Callers treat delivery as
// best effort, a failed send is logged and never bubbles into a response.
type Service struct {
	email    string
	password string
	logger   *logrus.Logger
}

func NewService(email, password string, logger *logrus.Logger) *Service {
	return &Service{
		email:    email,
		password: password,
		logger:   logger,
	}
}

func (service *Service) Send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(service.email, "StayVista Management"))
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	client := gomail.NewDialer(smtpServer, smtpServerPort, service.email, service.password)

	if err := client.DialAndSend(message); err != nil {
		service.logger.Errorf("failed to send mail to %s: %s", to, err)
		return err
	}

	return nil
}
