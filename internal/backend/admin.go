package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
)

func (c *Client) ListDepartments(ctx context.Context) ([]dto.DepartmentDTO, error) {
	return call[[]dto.DepartmentDTO](ctx, c, "admin.departments.list", http.MethodGet, "admin/Departments", nil)
}

func (c *Client) GetDepartment(ctx context.Context, id int64) (dto.DepartmentDTO, error) {
	return call[dto.DepartmentDTO](ctx, c, "admin.departments.get", http.MethodGet, fmt.Sprintf("admin/Departments/%d", id), nil)
}

func (c *Client) CreateDepartment(ctx context.Context, payload dto.DepartmentPayload) error {
	return c.exec(ctx, "admin.departments.create", http.MethodPost, "admin/Departments", payload)
}

func (c *Client) UpdateDepartment(ctx context.Context, id int64, payload dto.DepartmentPayload) error {
	payload.ID = id
	return c.exec(ctx, "admin.departments.update", http.MethodPut, fmt.Sprintf("admin/Departments/%d", id), payload)
}

func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	return c.exec(ctx, "admin.departments.delete", http.MethodDelete, fmt.Sprintf("admin/Departments/%d", id), nil)
}

func (c *Client) ListCourses(ctx context.Context) ([]dto.CourseDTO, error) {
	return call[[]dto.CourseDTO](ctx, c, "admin.courses.list", http.MethodGet, "admin/Courses", nil)
}

func (c *Client) GetCourse(ctx context.Context, id int64) (dto.CourseDTO, error) {
	return call[dto.CourseDTO](ctx, c, "admin.courses.get", http.MethodGet, fmt.Sprintf("admin/Courses/%d", id), nil)
}

func (c *Client) CreateCourse(ctx context.Context, payload dto.CoursePayload) error {
	return c.exec(ctx, "admin.courses.create", http.MethodPost, "admin/Courses", payload)
}

func (c *Client) UpdateCourse(ctx context.Context, id int64, payload dto.CoursePayload) error {
	payload.ID = id
	return c.exec(ctx, "admin.courses.update", http.MethodPut, fmt.Sprintf("admin/Courses/%d", id), payload)
}

func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.exec(ctx, "admin.courses.delete", http.MethodDelete, fmt.Sprintf("admin/Courses/%d", id), nil)
}

// ListUsers lists accounts, optionally restricted to one role.
func (c *Client) ListUsers(ctx context.Context, role models.Role) ([]dto.ManagedUserDTO, error) {
	path := "admin/Users"
	if role != "" {
		path += "?role=" + url.QueryEscape(string(role))
	}
	return call[[]dto.ManagedUserDTO](ctx, c, "admin.users.list", http.MethodGet, path, nil)
}

func (c *Client) ActivateUser(ctx context.Context, id string) error {
	return c.exec(ctx, "admin.users.activate", http.MethodPut, "admin/Users/"+url.PathEscape(id)+"/activate", struct{}{})
}

func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	return c.exec(ctx, "admin.users.deactivate", http.MethodPut, "admin/Users/"+url.PathEscape(id)+"/deactivate", struct{}{})
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.exec(ctx, "admin.users.delete", http.MethodDelete, "admin/Users/"+url.PathEscape(id), nil)
}

// Total names one of the admin aggregate counters.
type Total string

const (
	TotalStudents    Total = "students"
	TotalTeachers    Total = "teachers"
	TotalDepartments Total = "departments"
	TotalCourses     Total = "courses"
	TotalClasses     Total = "classes"
)

// AdminTotal fetches a single aggregate count.
func (c *Client) AdminTotal(ctx context.Context, total Total) (int64, error) {
	return call[int64](ctx, c, "admin.total."+string(total), http.MethodGet, "admin/total-"+string(total), nil)
}
