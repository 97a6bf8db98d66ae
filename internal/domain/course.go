package domain

import "time"

// Course is an offered subject-section owned by a professor. Active is a
// soft-delete flag: at most one active row may exist per (name, group_code),
// enforced by a partial unique index. Inactive rows are kept for history and
// reactivated in place instead of duplicated.
type Course struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	GroupCode   string     `gorm:"column:group_code;not null" json:"groupCode"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	ProfessorID int64      `gorm:"not null" json:"professorId"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	Professor   *Professor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
	Schedules   []Schedule `gorm:"foreignKey:CourseID" json:"schedules,omitempty"`
}

func (Course) TableName() string { return "courses" }

// Schedule is a weekday/time slot owned by exactly one course. Schedule sets
// are replaced wholesale on every edit, never diffed.
type Schedule struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Weekday   string `gorm:"not null" json:"weekday"`
	StartTime string `gorm:"column:start_time;not null" json:"startTime"`
	EndTime   string `gorm:"column:end_time;not null" json:"endTime"`
	CourseID  int64  `gorm:"not null" json:"courseId"`
}

func (Schedule) TableName() string { return "schedules" }

// Enrollment joins a student to a course. At most one active row per
// (course_id, student_id); a prior inactive row is reactivated rather than
// inserting a duplicate.
type Enrollment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CourseID  int64     `gorm:"not null" json:"courseId"`
	StudentID int64     `gorm:"not null" json:"studentId"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Enrollment) TableName() string { return "enrollments" }
