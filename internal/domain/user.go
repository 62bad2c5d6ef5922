package domain

// User is the identity produced by a successful credential check
type User struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}
