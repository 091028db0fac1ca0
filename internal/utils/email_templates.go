package utils

import (
	"bytes"
	"html/template"
)

const emailLayout = `{{define "top"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Heading}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
    <table role="presentation" style="width: 100%; border-collapse: collapse; background-color: #f5f5f5;">
        <tr>
            <td style="padding: 40px 20px;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1);">
                    <tr>
                        <td style="background-color: {{.Color}}; padding: 40px 30px; text-align: center; border-radius: 12px 12px 0 0;">
                            <div style="font-size: 56px; margin-bottom: 10px;">{{.Icon}}</div>
                            <h1 style="margin: 0; color: #ffffff; font-size: 26px; font-weight: 700;">{{.Heading}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
{{end}}

{{define "bottom"}}
                            <table role="presentation" style="width: 100%; margin: 30px 0;">
                                <tr>
                                    <td style="text-align: center;">
                                        <a href="{{.ProfileURL}}" style="display: inline-block; padding: 14px 36px; background-color: {{.Color}}; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: 600;">View my orders</a>
                                    </td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8f9fa; padding: 24px 30px; text-align: center; border-radius: 0 0 12px 12px; color: #999999; font-size: 13px;">
                            Elite Market · 3D printed goods made by independent makers
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>{{end}}

{{define "details"}}
<table role="presentation" style="width: 100%; border-collapse: collapse; margin: 20px 0; background-color: #f8f9fa; border-radius: 8px;">
    <tr><td style="padding: 10px 16px; color: #666666;">Product</td><td style="padding: 10px 16px; font-weight: 600;">{{.Title}}</td></tr>
    <tr><td style="padding: 10px 16px; color: #666666;">Order</td><td style="padding: 10px 16px; font-family: monospace;">{{.Reference}}</td></tr>
    {{if .Amount}}<tr><td style="padding: 10px 16px; color: #666666;">Amount</td><td style="padding: 10px 16px;">{{.Amount}} USD</td></tr>{{end}}
    {{if .TrackingCode}}<tr><td style="padding: 10px 16px; color: #666666;">Carrier</td><td style="padding: 10px 16px;">{{.ShippingCompany}}</td></tr>
    <tr><td style="padding: 10px 16px; color: #666666;">Tracking code</td><td style="padding: 10px 16px; font-family: monospace; font-weight: 600;">{{.TrackingCode}}</td></tr>{{end}}
</table>
{{end}}

{{define "paid"}}{{template "top" .}}
<p>Thank you for your purchase! Your payment went through.</p>
<p>{{.Message}}</p>
{{template "details" .}}
<p style="color: #666666; font-size: 14px;">Your receipt is attached to this e-mail.</p>
{{template "bottom" .}}{{end}}

{{define "shipped"}}{{template "top" .}}
<p>Good news: the maker just handed your print to the carrier.</p>
{{template "details" .}}
{{template "bottom" .}}{{end}}

{{define "shipment"}}{{template "top" .}}
<p>Your {{.Month}} subscription box is on its way.</p>
{{if .Content}}<p style="padding: 16px; background-color: #fff8e1; border-left: 4px solid {{.Color}}; border-radius: 4px;">{{.Content}}</p>{{end}}
{{template "details" .}}
{{template "bottom" .}}{{end}}
`

var emailTemplates = template.Must(template.New("email").Parse(emailLayout))

// EmailData feeds the order e-mail templates. Empty fields are omitted.
type EmailData struct {
	Heading         string
	Icon            string
	Color           string
	Message         string
	Title           string
	Reference       string
	Amount          string
	ShippingCompany string
	TrackingCode    string
	Month           string
	Content         string
	ProfileURL      string
}

func renderEmail(name string, data EmailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func PaidEmailHTML(data EmailData) (string, error) {
	data.Heading, data.Icon, data.Color = "Payment confirmed", "✅", "#4CAF50"
	return renderEmail("paid", data)
}

func ShippedEmailHTML(data EmailData) (string, error) {
	data.Heading, data.Icon, data.Color = "Your order has shipped", "📦", "#2196F3"
	return renderEmail("shipped", data)
}

func ShipmentEmailHTML(data EmailData) (string, error) {
	data.Heading, data.Icon, data.Color = "Your monthly box is on its way", "💎", "#9C27B0"
	return renderEmail("shipment", data)
}
