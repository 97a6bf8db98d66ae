package dto

type ScheduleInput struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CreateCourseRequest struct {
	Name        string          `json:"name"`
	GroupCode   string          `json:"groupCode"`
	ProfessorID int64           `json:"professorId"`
	Schedules   []ScheduleInput `json:"schedules,omitempty"`
}

// UpdateCourseRequest is a partial update. A non-nil Schedules replaces the
// whole schedule set, including an empty slice clearing it.
type UpdateCourseRequest struct {
	Name        *string          `json:"name,omitempty"`
	GroupCode   *string          `json:"groupCode,omitempty"`
	ProfessorID *int64           `json:"professorId,omitempty"`
	Schedules   *[]ScheduleInput `json:"schedules,omitempty"`
}

type EnrollRequest struct {
	StudentID int64 `json:"studentId"`
}
