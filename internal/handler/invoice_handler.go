package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstrecon/internal/domain"
	"gstrecon/internal/service"
)

// InvoiceHandler handles invoice submission and management endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Parse handles POST /api/v1/parse
// @Summary Upload and reconcile an invoice
// @Description Upload an invoice (PDF, JPG, PNG). Text is extracted, fields are parsed and the GST is verified against the authoritative rate.
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice file (PDF, JPG, or PNG)"
// @Param transactionType formData string true "SALE or PURCHASE"
// @Success 201 {object} Response{data=ReconcileResponse} "Invoice reconciled"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or bad transaction type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /parse [post]
func (h *InvoiceHandler) Parse(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	txType := domain.TransactionType(strings.ToUpper(strings.TrimSpace(c.PostForm("transactionType"))))

	result, err := h.invoiceService.Upload(c.Request.Context(), service.UploadInvoiceInput{
		OwnerID:         userID,
		TransactionType: txType,
		File:            file,
		FileName:        header.Filename,
		Size:            header.Size,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, newReconcileResponse(result))
}

// Voice handles POST /api/v1/voice-invoice
// @Summary Submit a voice or manually keyed invoice
// @Description Fields captured from speech are reconciled like an uploaded invoice. total and gstRate may be numbers or strings such as "₹11,800".
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.VoiceInvoiceInput true "Invoice fields"
// @Success 201 {object} Response{data=ReconcileResponse} "Invoice reconciled"
// @Failure 400 {object} ErrorResponseBody "No invoice data or bad transaction type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /voice-invoice [post]
func (h *InvoiceHandler) Voice(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.VoiceInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.TransactionType = domain.TransactionType(strings.ToUpper(strings.TrimSpace(string(input.TransactionType))))

	result, err := h.invoiceService.SubmitVoice(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, newReconcileResponse(result))
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description The caller's invoices, newest first.
// @Tags invoices
// @Produce json
// @Param transactionType query string false "SALE or PURCHASE"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ReconciledInvoice,meta=PagMeta} "Invoices"
// @Failure 400 {object} ErrorResponseBody "Bad transaction type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	txType := domain.TransactionType(strings.ToUpper(c.Query("transactionType")))

	invoices, total, err := h.invoiceService.List(c.Request.Context(), userID, txType, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if invoices == nil {
		invoices = []domain.ReconciledInvoice{}
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=InvoiceDetail} "Invoice with display view"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), userID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, InvoiceDetail{Invoice: inv, Display: NewInvoiceView(inv)})
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete an invoice
// @Description Also removes its purchase credit entry and stored file.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Invoice deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), userID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "Invoice deleted successfully"})
}

// FileURL handles GET /api/v1/invoices/:id/file
// @Summary Download link for the uploaded file
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=FileURLResponse} "Presigned URL"
// @Failure 404 {object} ErrorResponseBody "Invoice or file not found"
// @Security BearerAuth
// @Router /invoices/{id}/file [get]
func (h *InvoiceHandler) FileURL(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	url, err := h.invoiceService.GetFileURL(c.Request.Context(), userID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, FileURLResponse{URL: url})
}

func parseInvoiceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return uuid.Nil, false
	}
	return id, true
}
