package utils

import (
	"context"
	"log"
	"strings"
	"sync"

	"elite_market/internal/models"
)

// Sender is satisfied by *Mailer.
type Sender interface {
	Send(to, subject, html string, attachments ...Attachment) error
}

// ReceiptRenderer turns a receipt into a PDF.
type ReceiptRenderer func(ctx context.Context, r Receipt) ([]byte, error)

// OrderNotifier e-mails buyers about their orders. Every method returns at
// once and delivers from its own goroutine; Wait blocks until all are done.
type OrderNotifier struct {
	sender   Sender
	receipts ReceiptRenderer
	siteURL  string
	currency string
	wg       sync.WaitGroup
}

func NewOrderNotifier(sender Sender, siteURL, currency string) *OrderNotifier {
	return &OrderNotifier{
		sender:   sender,
		receipts: RenderReceiptPDF,
		siteURL:  strings.TrimRight(siteURL, "/"),
		currency: strings.ToUpper(currency),
	}
}

// WithReceipts swaps the PDF renderer; nil sends confirmations without a receipt.
func (n *OrderNotifier) WithReceipts(r ReceiptRenderer) *OrderNotifier {
	n.receipts = r
	return n
}

func (n *OrderNotifier) Wait() {
	n.wg.Wait()
}

func (n *OrderNotifier) OrderPaid(to string, order models.Order, product models.Product) {
	n.deliver(func() {
		amount := models.SaleAmount(order.Type, product.Price).StringFixed(2)
		html, err := PaidEmailHTML(EmailData{
			Message:    paidMessage(order.Type),
			Title:      product.Title,
			Reference:  order.ID.String(),
			Amount:     amount,
			ProfileURL: n.profileURL(),
		})
		if err != nil {
			log.Printf("❌ Paid e-mail template: %v", err)
			return
		}

		var attachments []Attachment
		if n.receipts != nil {
			pdf, err := n.receipts(context.Background(), Receipt{
				OrderID:    order.ID.String(),
				Date:       order.CreatedAt.Format("2006-01-02"),
				BuyerEmail: to,
				Title:      product.Title,
				Type:       string(order.Type),
				Amount:     amount,
				Currency:   n.currency,
				VerifyURL:  n.profileURL() + "?order=" + order.ID.String(),
			})
			if err != nil {
				log.Printf("⚠️ Receipt PDF for order %s: %v", order.ID, err)
			} else {
				attachments = append(attachments, Attachment{Name: "elite_market_receipt.pdf", Data: pdf})
			}
		}

		n.send(to, "✅ Payment confirmed - Elite Market", html, attachments...)
	})
}

func (n *OrderNotifier) OrderShipped(to string, order models.Order, product models.Product) {
	n.deliver(func() {
		html, err := ShippedEmailHTML(EmailData{
			Title:           product.Title,
			Reference:       order.ID.String(),
			ShippingCompany: order.ShippingCompany,
			TrackingCode:    order.TrackingCode,
			ProfileURL:      n.profileURL(),
		})
		if err != nil {
			log.Printf("❌ Shipped e-mail template: %v", err)
			return
		}
		n.send(to, "📦 Your order has shipped - Elite Market", html)
	})
}

func (n *OrderNotifier) ShipmentSent(to string, shipment models.Shipment, product models.Product) {
	n.deliver(func() {
		html, err := ShipmentEmailHTML(EmailData{
			Title:           product.Title,
			Reference:       shipment.ID.String(),
			ShippingCompany: shipment.ShippingCompany,
			TrackingCode:    shipment.TrackingCode,
			Month:           shipment.Month,
			Content:         shipment.Content,
			ProfileURL:      n.profileURL(),
		})
		if err != nil {
			log.Printf("❌ Shipment e-mail template: %v", err)
			return
		}
		n.send(to, "💎 Your "+shipment.Month+" box is on its way - Elite Market", html)
	})
}

func (n *OrderNotifier) deliver(fn func()) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		fn()
	}()
}

func (n *OrderNotifier) send(to, subject, html string, attachments ...Attachment) {
	if to == "" {
		return
	}
	if err := n.sender.Send(to, subject, html, attachments...); err != nil {
		log.Printf("❌ E-mail to %s failed: %v", to, err)
		return
	}
	log.Printf("📧 E-mail sent: %q → %s", subject, to)
}

func (n *OrderNotifier) profileURL() string {
	return n.siteURL + "/profile"
}

func paidMessage(t models.PurchaseType) string {
	switch t {
	case models.PurchaseDigital:
		return "Your STL file is ready to download from your profile."
	case models.PurchaseSubscription:
		return "Welcome to the monthly maker box. Your first box ships this month."
	default:
		return "The maker will print and ship your item shortly."
	}
}
