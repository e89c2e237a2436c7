package entity

import "time"

// User usuario del sistema. DisplayName y AvatarURL son opcionales.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	DisplayName  *string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
