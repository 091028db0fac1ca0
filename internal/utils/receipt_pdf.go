package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

const receiptTimeout = 30 * time.Second

// Receipt is what gets printed on the PDF attached to the order confirmation.
type Receipt struct {
	OrderID     string
	Date        string
	BuyerEmail  string
	Title       string
	Type        string
	Amount      string
	Currency    string
	VerifyURL   string
	QRCodeImage template.URL
}

const receiptLayout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<style>
  body { font-family: Arial, sans-serif; color: #222; margin: 40px; }
  h1 { font-size: 28px; margin: 0 0 4px 0; }
  .muted { color: #777; font-size: 13px; }
  table { width: 100%; border-collapse: collapse; margin: 30px 0; }
  th, td { text-align: left; padding: 10px; border-bottom: 1px solid #ddd; }
  .total { font-size: 18px; font-weight: bold; text-align: right; }
  .qr { text-align: center; margin-top: 40px; }
</style>
</head>
<body>
  <h1>Elite Market receipt</h1>
  <div class="muted">Order {{.OrderID}} · {{.Date}}</div>
  <div class="muted">Billed to {{.BuyerEmail}}</div>
  <table>
    <thead><tr><th>Item</th><th>Type</th><th>Amount</th></tr></thead>
    <tbody><tr><td>{{.Title}}</td><td>{{.Type}}</td><td>{{.Amount}} {{.Currency}}</td></tr></tbody>
  </table>
  <div class="total">Total paid: {{.Amount}} {{.Currency}}</div>
  <div class="qr">
    <img src="{{.QRCodeImage}}" width="160" height="160" alt="order QR code">
    <div class="muted">{{.VerifyURL}}</div>
  </div>
</body>
</html>`

var receiptTemplate = template.Must(template.New("receipt").Parse(receiptLayout))

// OrderQR encodes a link to the order as a PNG data URL ready for <img src>.
func OrderQR(link string) (template.URL, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}

func ReceiptHTML(r Receipt) (string, error) {
	if r.QRCodeImage == "" && r.VerifyURL != "" {
		qr, err := OrderQR(r.VerifyURL)
		if err != nil {
			return "", err
		}
		r.QRCodeImage = qr
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderReceiptPDF prints the receipt with a headless Chrome.
func RenderReceiptPDF(ctx context.Context, r Receipt) ([]byte, error) {
	html, err := ReceiptHTML(r)
	if err != nil {
		return nil, err
	}

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, receiptTimeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("data:text/html;base64,"+base64.StdEncoding.EncodeToString([]byte(html))),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
