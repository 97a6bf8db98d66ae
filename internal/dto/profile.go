package dto

// CreateProfileRequest creates a role profile together with its login
// account in one call, mirroring the nested create of the original API.
type CreateProfileRequest struct {
	FirstName         string               `json:"firstName"`
	LastName          string               `json:"lastName"`
	InstitutionalCode string               `json:"institutionalCode"`
	Specialty         string               `json:"specialty,omitempty"`
	Account           CreateAccountRequest `json:"account"`
}

type UpdateProfileRequest struct {
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	InstitutionalCode *string `json:"institutionalCode,omitempty"`
	Specialty         *string `json:"specialty,omitempty"`
}
