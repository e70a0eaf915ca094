package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type exportService interface {
	Classes(ctx context.Context, caller models.User, format, query string) (*service.ExportResult, error)
	Students(ctx context.Context, caller models.User, format, query string) (*service.ExportResult, error)
}

// ExportHandler streams class and student listings as CSV or PDF files.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Classes godoc
// @Summary Export class summaries
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param q query string false "Search"
// @Success 200 {file} file
// @Router /exports/classes [get]
func (h *ExportHandler) Classes(c *gin.Context) {
	h.serve(c, h.exports.Classes)
}

// Students godoc
// @Summary Export student overviews
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param q query string false "Search"
// @Success 200 {file} file
// @Router /exports/students [get]
func (h *ExportHandler) Students(c *gin.Context) {
	h.serve(c, h.exports.Students)
}

type exportFunc func(ctx context.Context, caller models.User, format, query string) (*service.ExportResult, error)

func (h *ExportHandler) serve(c *gin.Context, render exportFunc) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	result, err := render(c.Request.Context(), user, query.Format, query.Q)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
