package user

// UpdateProfileInput represents the request body for changing the display name.
type UpdateProfileInput struct {
	Name string `json:"name" validate:"required,max=100"`
}
