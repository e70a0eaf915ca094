package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AttendanceStatus is the backend's numeric attendance code.
type AttendanceStatus int

const (
	AttendancePresent AttendanceStatus = iota
	AttendanceAbsent
	AttendanceLate
)

var attendanceNames = map[AttendanceStatus]string{
	AttendancePresent: "Present",
	AttendanceAbsent:  "Absent",
	AttendanceLate:    "Late",
}

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	_, ok := attendanceNames[s]
	return ok
}

func (s AttendanceStatus) String() string {
	if name, ok := attendanceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AttendanceStatus(%d)", int(s))
}

// ParseAttendanceStatus accepts a status name in any case.
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	for status, name := range attendanceNames {
		if strings.EqualFold(name, strings.TrimSpace(raw)) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown attendance status %q", raw)
}

// MarshalJSON renders the status by name for console clients.
func (s AttendanceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the numeric code or the status name.
func (s *AttendanceStatus) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*s = AttendanceStatus(code)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseAttendanceStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Attendance is one attendance mark for a student in a class.
type Attendance struct {
	ID          int64            `json:"id"`
	ClassID     int64            `json:"classId"`
	ClassName   string           `json:"className"`
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName"`
	Date        string           `json:"date"`
	Status      AttendanceStatus `json:"status"`
}
