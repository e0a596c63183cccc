package handler

import (
	"github.com/gin-gonic/gin"

	"gstrecon/internal/service"
)

// RateHandler answers direct GST rate queries.
type RateHandler struct {
	rateService service.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService service.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// Resolve handles GET /api/v1/gst-rates
// @Summary Look up a GST rate
// @Description Exact or prefix HSN match first, then a keyword alias found in text. source is "none" when nothing matches.
// @Tags rates
// @Produce json
// @Param hsn query string false "HSN or SAC code"
// @Param text query string false "Free text describing the item"
// @Success 200 {object} Response{data=domain.RateResolution} "Resolution"
// @Router /gst-rates [get]
func (h *RateHandler) Resolve(c *gin.Context) {
	res, err := h.rateService.Resolve(c.Request.Context(), c.Query("hsn"), c.Query("text"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}
