package domain

// Student, Professor and HealthStaff are role profiles, each one-to-one with
// an Account. They share one shape on purpose: the profile service and store
// are generic over the three.

type Student struct {
	ID                int64    `gorm:"primaryKey" json:"id"`
	FirstName         string   `gorm:"not null" json:"firstName"`
	LastName          string   `gorm:"not null" json:"lastName"`
	InstitutionalCode string   `gorm:"uniqueIndex:ux_students_code" json:"institutionalCode"`
	AccountID         int64    `gorm:"uniqueIndex:ux_students_account" json:"accountId"`
	Account           *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Student) TableName() string { return "students" }

func (s Student) GetID() int64        { return s.ID }
func (s Student) GetAccountID() int64 { return s.AccountID }
func (Student) ProfileRole() Role     { return RoleStudent }
func (Student) EntityName() string    { return "student" }

type Professor struct {
	ID                int64    `gorm:"primaryKey" json:"id"`
	FirstName         string   `gorm:"not null" json:"firstName"`
	LastName          string   `gorm:"not null" json:"lastName"`
	InstitutionalCode string   `gorm:"uniqueIndex:ux_professors_code" json:"institutionalCode"`
	AccountID         int64    `gorm:"uniqueIndex:ux_professors_account" json:"accountId"`
	Account           *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Professor) TableName() string { return "professors" }

func (p Professor) GetID() int64        { return p.ID }
func (p Professor) GetAccountID() int64 { return p.AccountID }
func (Professor) ProfileRole() Role     { return RoleProfessor }
func (Professor) EntityName() string    { return "professor" }

type HealthStaff struct {
	ID                int64    `gorm:"primaryKey" json:"id"`
	FirstName         string   `gorm:"not null" json:"firstName"`
	LastName          string   `gorm:"not null" json:"lastName"`
	InstitutionalCode string   `gorm:"uniqueIndex:ux_health_staff_code" json:"institutionalCode"`
	Specialty         string   `json:"specialty"`
	AccountID         int64    `gorm:"uniqueIndex:ux_health_staff_account" json:"accountId"`
	Account           *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (HealthStaff) TableName() string { return "health_staff" }

func (h HealthStaff) GetID() int64        { return h.ID }
func (h HealthStaff) GetAccountID() int64 { return h.AccountID }
func (HealthStaff) ProfileRole() Role     { return RoleHealth }
func (HealthStaff) EntityName() string    { return "health staff" }

// Profile is the common surface of the three role profiles.
type Profile interface {
	GetID() int64
	GetAccountID() int64
	ProfileRole() Role
	EntityName() string
}
