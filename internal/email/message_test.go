package email_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"gstrecon/internal/domain"
	"gstrecon/internal/email"
)

func TestMismatchMessage(t *testing.T) {
	id := uuid.New()
	msg := email.MismatchMessage("Asha", "https://app.example.com/", domain.MismatchAlert{
		InvoiceID:         id,
		InvoiceNumber:     "INV-42",
		Vendor:            "Sharma & Sons",
		DeclaredRate:      18,
		VerifiedRate:      12,
		DeclaredTotalTax:  19067.8,
		CorrectedTotalTax: 13392.86,
	})

	assert.Equal(t, "GST rate mismatch on invoice INV-42", msg.Subject)
	assert.Contains(t, msg.Text, "declares GST at 18% but the verified rate is 12%")
	assert.Contains(t, msg.Text, "₹19,067.8")
	assert.Contains(t, msg.Text, "₹13,392.86")
	assert.Contains(t, msg.Text, "https://app.example.com/invoices/"+id.String())
	assert.Contains(t, msg.HTML, "Sharma &amp; Sons")
	assert.NotContains(t, msg.HTML, "Sharma & Sons")
}

func TestMismatchMessage_NoName(t *testing.T) {
	msg := email.MismatchMessage("  ", "", domain.MismatchAlert{InvoiceNumber: "X"})

	assert.Contains(t, msg.Text, "Hi there,")
}
