package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/avdeenko/aromashop/internal/models"
)

// Mailer sends order emails over SMTP.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *Mailer) OrderCreated(ctx context.Context, email string, order *models.Order) error {
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNumber)
	return m.send(ctx, email, subject, orderCreatedHTML(order))
}

func (m *Mailer) OrderStatusChanged(ctx context.Context, email string, order *models.Order) error {
	return m.send(ctx, email, statusSubject(order), statusChangedHTML(order))
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

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

	return client.DialAndSendWithContext(ctx, msg)
}
