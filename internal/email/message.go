// Package email builds the notification messages sent to invoice owners.
// Delivery lives in the ses and noop subpackages.
package email

import (
	"fmt"
	"html"
	"strings"

	"gstrecon/internal/domain"
	"gstrecon/internal/taxcalc"
)

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// MismatchMessage renders the alert sent when an invoice's declared GST rate
// was corrected to the verified rate.
func MismatchMessage(toName, frontendURL string, alert domain.MismatchAlert) Message {
	name := strings.TrimSpace(toName)
	if name == "" {
		name = "there"
	}
	invoiceURL := fmt.Sprintf("%s/invoices/%s", strings.TrimRight(frontendURL, "/"), alert.InvoiceID)

	subject := fmt.Sprintf("GST rate mismatch on invoice %s", alert.InvoiceNumber)
	text := fmt.Sprintf(
		"Hi %s,\n\nInvoice %s from %s declares GST at %s but the verified rate is %s.\n"+
			"Declared tax: %s\nCorrected tax: %s\n\nReview it here:\n%s\n\nGSTRecon",
		name, alert.InvoiceNumber, alert.Vendor,
		taxcalc.FormatRate(alert.DeclaredRate), taxcalc.FormatRate(alert.VerifiedRate),
		taxcalc.FormatINR(alert.DeclaredTotalTax), taxcalc.FormatINR(alert.CorrectedTotalTax),
		invoiceURL,
	)

	return Message{
		Subject: subject,
		HTML:    buildMismatchHTML(name, invoiceURL, alert),
		Text:    text,
	}
}

func buildMismatchHTML(name, invoiceURL string, alert domain.MismatchAlert) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">GST rate mismatch</h2>
  <p>Hi %s,</p>
  <p>Invoice <strong>%s</strong> from %s declares GST at <strong>%s</strong> but the verified rate is <strong>%s</strong>. The tax has been recalculated.</p>
  <table style="border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 4px 12px;">Declared tax</td><td style="padding: 4px 12px;">%s</td></tr>
    <tr><td style="padding: 4px 12px;">Corrected tax</td><td style="padding: 4px 12px;">%s</td></tr>
  </table>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review Invoice</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">GSTRecon - Invoice Reconciliation</p>
</body>
</html>`,
		html.EscapeString(name),
		html.EscapeString(alert.InvoiceNumber),
		html.EscapeString(alert.Vendor),
		taxcalc.FormatRate(alert.DeclaredRate),
		taxcalc.FormatRate(alert.VerifiedRate),
		taxcalc.FormatINR(alert.DeclaredTotalTax),
		taxcalc.FormatINR(alert.CorrectedTotalTax),
		html.EscapeString(invoiceURL),
	)
}
