package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleStudent UserRole = "STUDENT"
	UserRoleAdmin   UserRole = "ADMIN"
)

// User is read by the engine for ownership checks and notification addresses.
// Authentication itself happens upstream; requests arrive with a user id.
type User struct {
	Id        uuid.UUID
	Email     string
	Name      string
	Phone     string
	Role      UserRole
	CreatedAt time.Time
}
