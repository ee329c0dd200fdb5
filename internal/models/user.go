package models

// Roles recognized by the platform. Exact match only, no hierarchy.
const (
	RoleAdmin    = "admin"
	RoleSeller   = "seller"
	RoleCustomer = "customer"
)

// SignupInput accepts either a single name or a firstName/lastName pair.
type SignupInput struct {
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	Role      string `json:"role" validate:"required,oneof=admin seller customer"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=20"`
}

// UserInput is the shape for direct user creation through /api/users.
type UserInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=5"`
	Role      string `json:"role" validate:"required,oneof=admin seller customer"`
	Telephone string `json:"telephone,omitempty"`
	Gender    string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Status    string `json:"status,omitempty"`
}

type ResetPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type SetPasswordInput struct {
	OobCode     string `json:"oobCode" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=5,max=20"`
}
