package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/Kariqs/ezelectronics-api/utils"
	"github.com/go-resty/resty/v2"
)

// CheckoutNotifier is told about every cart that was sealed. It runs after the
// checkout committed, so its error never undoes the payment.
type CheckoutNotifier interface {
	CartCheckedOut(ctx context.Context, cart models.CartView) error
}

type NoopNotifier struct{}

func (NoopNotifier) CartCheckedOut(context.Context, models.CartView) error { return nil }

type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(client *resty.Client, url string) *WebhookNotifier {
	return &WebhookNotifier{client: client, url: url}
}

type checkoutEvent struct {
	Event string          `json:"event"`
	Cart  models.CartView `json:"cart"`
}

func (n *WebhookNotifier) CartCheckedOut(ctx context.Context, cart models.CartView) error {
	return utils.PostWebhook(ctx, n.client, n.url, checkoutEvent{Event: "cart.checked_out", Cart: cart})
}

// EmailNotifier mails an HTML receipt of each checkout to a fixed inbox.
type EmailNotifier struct {
	mail         utils.MailConfig
	to           string
	templatePath string
	send         func(cfg utils.MailConfig, to, subject, templatePath string, data any) error
}

func NewEmailNotifier(mail utils.MailConfig, to, templatePath string) *EmailNotifier {
	return &EmailNotifier{
		mail:         mail,
		to:           to,
		templatePath: templatePath,
		send:         utils.SendEmail,
	}
}

type receiptData struct {
	Customer    string
	PaymentDate string
	Total       float64
	Products    []models.ProductInCart
}

func (n *EmailNotifier) CartCheckedOut(_ context.Context, cart models.CartView) error {
	subject := fmt.Sprintf("EZElectronics receipt for %s (%s)", cart.Customer, cart.PaymentDate)
	return n.send(n.mail, n.to, subject, n.templatePath, receiptData{
		Customer:    cart.Customer,
		PaymentDate: cart.PaymentDate,
		Total:       cart.Total,
		Products:    cart.Products,
	})
}

// MultiNotifier calls every notifier, even after one fails, and joins the errors.
type MultiNotifier []CheckoutNotifier

func (m MultiNotifier) CartCheckedOut(ctx context.Context, cart models.CartView) error {
	var errs []error
	for _, n := range m {
		if err := n.CartCheckedOut(ctx, cart); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
