package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	"github.com/noah-isme/sma-console-gateway/pkg/response"
)

type catalogService interface {
	Departments(ctx context.Context) ([]models.Department, error)
	Department(ctx context.Context, id int64) (*models.Department, error)
	CreateDepartment(ctx context.Context, req dto.DepartmentRequest) error
	UpdateDepartment(ctx context.Context, id int64, req dto.DepartmentRequest) error
	DeleteDepartment(ctx context.Context, id int64) error
	Course(ctx context.Context, id int64) (*models.Course, error)
	ManageableCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, req dto.CourseRequest) error
	UpdateCourse(ctx context.Context, id int64, req dto.CourseRequest) error
	DeleteCourse(ctx context.Context, id int64) error
}

type courseSummarySource interface {
	CourseSummaries(ctx context.Context, caller models.User, query string) ([]models.CourseSummary, error)
}

// CatalogHandler exposes department and course management.
type CatalogHandler struct {
	catalog   catalogService
	summaries courseSummarySource
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog catalogService, summaries courseSummarySource) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, summaries: summaries}
}

// Departments godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Param q query string false "Search"
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *CatalogHandler) Departments(c *gin.Context) {
	items, err := h.catalog.Departments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, service.SearchDepartments(items, searchQuery(c)), nil)
}

// Department godoc
// @Summary Get department
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [get]
func (h *CatalogHandler) Department(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.catalog.Department(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// CreateDepartment godoc
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Param payload body dto.DepartmentRequest true "Department"
// @Success 201 {object} response.Envelope
// @Router /departments [post]
func (h *CatalogHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.catalog.CreateDepartment(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// UpdateDepartment godoc
// @Summary Update department
// @Tags Departments
// @Accept json
// @Produce json
// @Param id path int true "Department ID"
// @Param payload body dto.DepartmentRequest true "Department"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [put]
func (h *CatalogHandler) UpdateDepartment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.catalog.UpdateDepartment(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}

// DeleteDepartment godoc
// @Summary Delete department
// @Tags Departments
// @Param id path int true "Department ID"
// @Success 204
// @Router /departments/{id} [delete]
func (h *CatalogHandler) DeleteDepartment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteDepartment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Courses godoc
// @Summary List course summaries with their teachers and classes
// @Tags Courses
// @Produce json
// @Param q query string false "Search"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	rows, err := h.summaries.CourseSummaries(c.Request.Context(), user, searchQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// ManageableCourses godoc
// @Summary Courses the caller may attach to classes
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/manageable [get]
func (h *CatalogHandler) ManageableCourses(c *gin.Context) {
	items, err := h.catalog.ManageableCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Course godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CatalogHandler) Course(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.catalog.Course(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// CreateCourse godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseRequest true "Course"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.catalog.CreateCourse(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// UpdateCourse godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body dto.CourseRequest true "Course"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.catalog.UpdateCourse(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}

// DeleteCourse godoc
// @Summary Delete course
// @Tags Courses
// @Param id path int true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCourse(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
