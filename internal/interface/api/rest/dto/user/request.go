package user

// Requests are bound from multipart forms; the optional "profile" file part
// is read separately by the controller.
type (
	CreateRequest struct {
		Username string `form:"username" validate:"required,max=64"`
		Email    string `form:"email" validate:"required,email,max=254"`
		Password string `form:"password" validate:"required,max=72"`
	}
	UpdateRequest struct {
		Username string `form:"username" validate:"omitempty,max=64"`
		Email    string `form:"email" validate:"omitempty,email,max=254"`
		Password string `form:"password" validate:"omitempty,max=72"`
	}
)
