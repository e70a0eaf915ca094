package service

import (
	"sync"

	"github.com/noah-isme/sma-console-gateway/internal/models"
)

// NameLookup resolves department and course ids to display names. Each
// successful department or course listing replaces the matching table.
type NameLookup struct {
	mu          sync.RWMutex
	departments map[int64]string
	courses     map[int64]string
}

// NewNameLookup constructs an empty lookup.
func NewNameLookup() *NameLookup {
	return &NameLookup{
		departments: make(map[int64]string),
		courses:     make(map[int64]string),
	}
}

// ReplaceDepartments swaps the department table.
func (l *NameLookup) ReplaceDepartments(items []models.Department) {
	next := make(map[int64]string, len(items))
	for _, d := range items {
		next[d.ID] = d.Name
	}
	l.mu.Lock()
	l.departments = next
	l.mu.Unlock()
}

// ReplaceCourses swaps the course table.
func (l *NameLookup) ReplaceCourses(items []models.Course) {
	next := make(map[int64]string, len(items))
	for _, c := range items {
		next[c.ID] = c.Name
	}
	l.mu.Lock()
	l.courses = next
	l.mu.Unlock()
}

// DepartmentName returns the cached name of a department.
func (l *NameLookup) DepartmentName(id int64) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	name, ok := l.departments[id]
	return name, ok
}

// CourseName returns the cached name of a course.
func (l *NameLookup) CourseName(id int64) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	name, ok := l.courses[id]
	return name, ok
}

func (l *NameLookup) empty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.departments) == 0
}

// Invalidate drops both tables.
func (l *NameLookup) Invalidate() {
	l.mu.Lock()
	l.departments = make(map[int64]string)
	l.courses = make(map[int64]string)
	l.mu.Unlock()
}
