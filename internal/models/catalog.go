package models

// Department groups courses and classes.
type Department struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	HeadDepartmentID   string `json:"headDepartmentId"`
	HeadDepartmentName string `json:"headDepartmentName"`
	IsActive           bool   `json:"isActive"`
}

// Course is a subject owned by a department.
type Course struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Description    string `json:"description"`
	Credits        int    `json:"credits"`
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	IsActive       bool   `json:"isActive"`
}

// DisplayName renders "<code> - <name>", the label used in class setups.
func (c Course) DisplayName() string {
	return c.Code + " - " + c.Name
}
