package domain

// User represents an authenticated owner of financial data.
// Every other entity is scoped to exactly one user.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
