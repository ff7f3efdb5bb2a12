package dto

// LoginResponseDTO is returned by POST /auth/login.
type LoginResponseDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required"`
	UserUUID  string `json:"userUUID" validate:"required"`
	Secret    string `json:"secret" validate:"required"`
	UserName  string `json:"userName"`
}
