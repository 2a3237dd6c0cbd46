package domain

// ContactMessage is a message from the public contact form. It is not
// persisted; it only feeds the notification email to the site owner.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Message string `json:"message" validate:"required,max=5000"`
}
