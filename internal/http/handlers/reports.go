package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/forcebook-backend/internal/http/response"
	"github.com/yungbote/forcebook-backend/internal/services"
)

var errInvalidLimit = errors.New("limit must be a non-negative integer")

// ReportHandler answers population reports as bare JSON values.
type ReportHandler struct {
	reports services.ReportService
}

func NewReportHandler(reports services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GET /api/rebels/traitorsRate
func (h *ReportHandler) TraitorsRate(c *gin.Context) {
	v, err := h.reports.TraitorsRate(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, v)
}

// GET /api/rebels/nonTraitorsRate (also /rebelsRate)
func (h *ReportHandler) NonTraitorsRate(c *gin.Context) {
	v, err := h.reports.NonTraitorsRate(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, v)
}

// GET /api/rebels/avgItem
func (h *ReportHandler) AverageItems(c *gin.Context) {
	v, err := h.reports.AverageItems(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, v)
}

// GET /api/rebels/traitorsPoints
func (h *ReportHandler) TraitorsPoints(c *gin.Context) {
	v, err := h.reports.TraitorsPoints(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, v)
}

// GET /api/rebels/stats
func (h *ReportHandler) Stats(c *gin.Context) {
	v, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, v)
}
