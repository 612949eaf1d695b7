package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/terms-api/internal/serializer"
	"github.com/noah-isme/terms-api/internal/service"
	"github.com/noah-isme/terms-api/pkg/response"
)

type termService interface {
	List(ctx context.Context) (*serializer.TermCollection, error)
	Get(ctx context.Context, req service.TermCodeRequest) (*serializer.TermResource, error)
	Current(ctx context.Context) (*service.CurrentTerm, error)
}

// TermHandler exposes term endpoints.
type TermHandler struct {
	service termService
}

// NewTermHandler constructs a term handler.
func NewTermHandler(svc termService) *TermHandler {
	return &TermHandler{service: svc}
}

// Register mounts the term routes on rg.
func (h *TermHandler) Register(rg *gin.RouterGroup) {
	terms := rg.Group("/terms")
	terms.GET("", h.List)
	terms.GET("/current", h.Current)
	terms.GET("/:termCode", h.Get)
}

// List godoc
// @Summary List terms
// @Description List every academic term with its status relative to the current term
// @Tags Terms
// @Produce json
// @Success 200 {object} serializer.TermCollection
// @Failure 500 {object} response.Envelope
// @Router /terms [get]
func (h *TermHandler) List(c *gin.Context) {
	terms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Document(c, http.StatusOK, terms)
}

// Get godoc
// @Summary Get term by code
// @Tags Terms
// @Produce json
// @Param termCode path string true "Six digit term code"
// @Success 200 {object} serializer.TermDocument
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /terms/{termCode} [get]
func (h *TermHandler) Get(c *gin.Context) {
	term, err := h.service.Get(c.Request.Context(), service.TermCodeRequest{TermCode: c.Param("termCode")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Document(c, http.StatusOK, serializer.NewTermDocument(term))
}

// Current godoc
// @Summary Get current term code
// @Tags Terms
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /terms/current [get]
func (h *TermHandler) Current(c *gin.Context) {
	current, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, current)
}
