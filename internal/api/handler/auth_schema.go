package handler

type registerRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	WhatsApp        string `json:"whatsapp"`
}

type verifyRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code"       validate:"required,len=6,numeric"`
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"            validate:"required"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type messageResponse struct {
	Message string `json:"message"`
}
