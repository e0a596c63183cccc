package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gstrecon/internal/export"
	"gstrecon/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReturnHandler serves the GST return views.
type ReturnHandler struct {
	returnService service.ReturnService
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(returnService service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// GSTR1 handles GET /api/v1/gstr1
// @Summary GSTR-1 outward supplies
// @Description SALE invoices of the month split into B2B and B2C with an HSN summary. format=csv downloads the rows.
// @Tags returns
// @Produce json
// @Produce text/csv
// @Param month query string false "Month as YYYY-MM (default current month)"
// @Param format query string false "json (default) or csv"
// @Success 200 {object} Response{data=domain.GSTR1Return} "GSTR-1"
// @Failure 400 {object} ErrorResponseBody "Invalid month"
// @Security BearerAuth
// @Router /gstr1 [get]
func (h *ReturnHandler) GSTR1(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	ret, err := h.returnService.GSTR1(c.Request.Context(), userID, c.Query("month"))
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.Query("format") == "csv" {
		setAttachment(c, fmt.Sprintf("gstr1_%s.csv", ret.Period), "text/csv; charset=utf-8")
		w, err := export.NewCSVWriter(c.Writer)
		if err == nil {
			err = w.WriteGSTR1(ret)
		}
		if err != nil {
			log.Printf("returnHandler.GSTR1: writing CSV for user %s: %v", userID, err)
		}
		return
	}

	RespondOK(c, ret)
}

// GSTR2A handles GET /api/v1/gstr2a
// @Summary GSTR-2A purchase credit entries
// @Tags returns
// @Produce json
// @Success 200 {object} Response{data=[]domain.PurchaseCreditEntry} "Entries"
// @Security BearerAuth
// @Router /gstr2a [get]
func (h *ReturnHandler) GSTR2A(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	entries, err := h.returnService.GSTR2A(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

// DownloadGSTR2A handles GET /api/v1/gstr2a/download/:format
// @Summary Download GSTR-2A
// @Description format is json, excel or csv.
// @Tags returns
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format path string true "json, excel or csv"
// @Success 200 {file} file "GSTR-2A file"
// @Failure 400 {object} ErrorResponseBody "Unknown format"
// @Security BearerAuth
// @Router /gstr2a/download/{format} [get]
func (h *ReturnHandler) DownloadGSTR2A(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	format := c.Param("format")
	if format != "json" && format != "excel" && format != "csv" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be json, excel or csv")
		return
	}

	entries, err := h.returnService.GSTR2A(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	switch format {
	case "json":
		c.Header("Content-Disposition", `attachment; filename="gstr2a.json"`)
		c.JSON(http.StatusOK, entries)
	case "excel":
		var buf bytes.Buffer
		if err := export.WriteGSTR2AWorkbook(&buf, entries); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="gstr2a.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	case "csv":
		setAttachment(c, "gstr2a.csv", "text/csv; charset=utf-8")
		w, err := export.NewCSVWriter(c.Writer)
		if err == nil {
			err = w.WriteGSTR2A(entries)
		}
		if err != nil {
			log.Printf("returnHandler.DownloadGSTR2A: writing CSV for user %s: %v", userID, err)
		}
	}
}

// GSTR2B handles GET /api/v1/gstr2b
// @Summary GSTR-2B input tax credit summary
// @Description Eligible ITC is IGST when present, else CGST+SGST; entries with neither are ineligible.
// @Tags returns
// @Produce json
// @Success 200 {object} Response{data=domain.ITCSummary} "ITC summary"
// @Security BearerAuth
// @Router /gstr2b [get]
func (h *ReturnHandler) GSTR2B(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	summary, err := h.returnService.SummarizeITC(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// GSTR3B handles GET /api/v1/gstr3b
// @Summary GSTR-3B net liability
// @Description Outward tax of the month less eligible ITC dated in the month.
// @Tags returns
// @Produce json
// @Param month query string false "Month as YYYY-MM (default current month)"
// @Success 200 {object} Response{data=domain.GSTR3BReturn} "GSTR-3B"
// @Failure 400 {object} ErrorResponseBody "Invalid month"
// @Security BearerAuth
// @Router /gstr3b [get]
func (h *ReturnHandler) GSTR3B(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	ret, err := h.returnService.GSTR3B(c.Request.Context(), userID, c.Query("month"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ret)
}

// GSTR3BSummary handles GET /api/v1/gstr3b/summary
// @Summary Monthly period summary
// @Description Counts and tax totals over invoices dated in the month. Invoices without a date are left out.
// @Tags returns
// @Produce json
// @Param month query string false "Month as YYYY-MM (default current month)"
// @Success 200 {object} Response{data=domain.PeriodSummary} "Period summary"
// @Failure 400 {object} ErrorResponseBody "Invalid month"
// @Security BearerAuth
// @Router /gstr3b/summary [get]
func (h *ReturnHandler) GSTR3BSummary(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	summary, err := h.returnService.MonthlySummary(c.Request.Context(), userID, c.Query("month"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// PeriodSummary handles GET /api/v1/summary
// @Summary Summary over a date range
// @Description from is inclusive and to is exclusive, both YYYY-MM-DD.
// @Tags returns
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date, exclusive (YYYY-MM-DD)"
// @Success 200 {object} Response{data=domain.PeriodSummary} "Period summary"
// @Failure 400 {object} ErrorResponseBody "Invalid range"
// @Security BearerAuth
// @Router /summary [get]
func (h *ReturnHandler) PeriodSummary(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	start, errStart := time.Parse("2006-01-02", c.Query("from"))
	end, errEnd := time.Parse("2006-01-02", c.Query("to"))
	if errStart != nil || errEnd != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PERIOD", "from and to must be dates as YYYY-MM-DD")
		return
	}

	summary, err := h.returnService.SummarizePeriod(c.Request.Context(), userID, start, end)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

func setAttachment(c *gin.Context, filename, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
}

