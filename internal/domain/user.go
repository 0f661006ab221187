// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль учетной записи. Допустимы только два значения.
type Role string

const (
	RoleJobSeeker Role = "Job Seeker"
	RoleEmployer  Role = "Employer"
)

// Valid сообщает, является ли роль одной из двух известных.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// ParseRole преобразует строку из запроса или токена в Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID           uuid.UUID `json:"_id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         Role      `json:"role" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// Principal — аутентифицированный пользователь, от имени которого выполняется запрос.
type Principal struct {
	ID   uuid.UUID
	Role Role
}
