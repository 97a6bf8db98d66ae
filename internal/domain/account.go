package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
	RoleHealth    Role = "health"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleProfessor, RoleHealth:
		return true
	}
	return false
}

// Account is a login identity. Password always holds a bcrypt hash, never
// plaintext; both Password and RecoveryToken stay out of JSON responses.
type Account struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"type:citext;uniqueIndex:ux_accounts_email" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	Role          Role      `gorm:"type:text;not null" json:"role"`
	RecoveryToken *string   `gorm:"column:recovery_token" json:"-"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`

	Student     *Student     `gorm:"foreignKey:AccountID" json:"student,omitempty"`
	Professor   *Professor   `gorm:"foreignKey:AccountID" json:"professor,omitempty"`
	HealthStaff *HealthStaff `gorm:"foreignKey:AccountID" json:"healthStaff,omitempty"`
}

func (Account) TableName() string { return "accounts" }
