package dto

type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type ValidateUserRequest struct {
	Code string `json:"code" validate:"required"`
}
