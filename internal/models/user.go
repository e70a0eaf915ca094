package models

// Role is the console role carried by a session.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// ParseRole converts a backend role string. Blank values default to Student.
func ParseRole(raw string) Role {
	if raw == "" {
		return RoleStudent
	}
	return Role(raw)
}

// User is an account as listed by the admin users endpoint.
type User struct {
	ID          string `json:"id"`
	UserName    string `json:"userName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	IsActive    bool   `json:"isActive"`
	CreatedDate string `json:"createdDate,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}
