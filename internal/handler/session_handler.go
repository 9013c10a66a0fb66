package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/adminui-api/internal/dto"
	"github.com/noah-isme/adminui-api/internal/middleware"
	"github.com/noah-isme/adminui-api/internal/models"
	"github.com/noah-isme/adminui-api/internal/service"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
	"github.com/noah-isme/adminui-api/pkg/response"
)

type tableSessionService interface {
	Create(ctx context.Context) (*models.SessionView, error)
	View(ctx context.Context, id string) (*models.TableView, error)
	Apply(ctx context.Context, id string, req dto.IntentRequest, actor string) (*models.TableView, error)
	End(ctx context.Context, id string) error
}

type sessionExporter interface {
	Export(ctx context.Context, id, format string) (*service.ExportFile, error)
}

// SessionHandler serves the table session endpoints used by view renderers.
type SessionHandler struct {
	sessions tableSessionService
	exporter sessionExporter
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessions tableSessionService, exporter sessionExporter) *SessionHandler {
	return &SessionHandler{sessions: sessions, exporter: exporter}
}

// Create godoc
// @Summary Open a table session
// @Description Opens a session seeded with the loaded members and returns its first view
// @Tags Sessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	created, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Get godoc
// @Summary Current view of a table session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	view, err := h.sessions.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Intent godoc
// @Summary Dispatch one intent
// @Description Applies a single renderer event to the session and returns the new view
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.IntentRequest true "Intent"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/intents [post]
func (h *SessionHandler) Intent(c *gin.Context) {
	var req dto.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid intent payload"))
		return
	}
	view, err := h.sessions.Apply(c.Request.Context(), c.Param("id"), req, middleware.Subject(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Delete godoc
// @Summary Close a table session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.End(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the filtered view
// @Description Downloads every member matching the session's search term
// @Tags Sessions
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/export [get]
func (h *SessionHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf"))
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), c.Param("id"), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}
