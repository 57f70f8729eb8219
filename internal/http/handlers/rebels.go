package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/forcebook-backend/internal/http/response"
	"github.com/yungbote/forcebook-backend/internal/services"
)

type RebelHandler struct {
	rebels services.RebelService
}

func NewRebelHandler(rebels services.RebelService) *RebelHandler {
	return &RebelHandler{rebels: rebels}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

// GET /api/rebels
func (h *RebelHandler) ListRebels(c *gin.Context) {
	out, err := h.rebels.List(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/rebels/:name
func (h *RebelHandler) GetRebel(c *gin.Context) {
	out, err := h.rebels.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/rebels/createRebel
func (h *RebelHandler) CreateRebel(c *gin.Context) {
	var req services.RegisterRebelRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.rebels.Register(c.Request.Context(), req)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	c.Header("Location", "/api/rebels/"+url.PathEscape(out.Name))
	response.RespondCreated(c, out)
}

// PUT /api/rebels/updateLocation
func (h *RebelHandler) UpdateLocation(c *gin.Context) {
	var req services.UpdateLocationRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.rebels.UpdateLocation(c.Request.Context(), req)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /api/rebels/reportTreason
func (h *RebelHandler) ReportTreason(c *gin.Context) {
	var req services.ReportTreasonRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.rebels.ReportTreason(c.Request.Context(), req)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /api/rebels/negotiateItems
func (h *RebelHandler) NegotiateItems(c *gin.Context) {
	var req services.NegotiateRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.rebels.Negotiate(c.Request.Context(), req)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/rebels/:name/negotiations?limit=
func (h *RebelHandler) ListNegotiations(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", errInvalidLimit)
			return
		}
		limit = n
	}
	out, err := h.rebels.History(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/items
func (h *RebelHandler) ListItems(c *gin.Context) {
	out, err := h.rebels.ItemTemplates(c.Request.Context())
	if err != nil {
		response.RespondFailure(c, err)
		return
	}
	response.RespondOK(c, out)
}
