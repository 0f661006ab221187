package usecase

import (
	"context"

	"github.com/GoArmGo/CareerCraft/internal/domain"
)

// RegisterInput — данные формы регистрации.
type RegisterInput struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput — данные формы входа. Роль указывается явно и должна совпадать
// с ролью учетной записи.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserInput — редактируемые поля профиля.
type UpdateUserInput struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
}

// Session — пользователь и выпущенный для него токен.
type Session struct {
	User  *domain.User
	Token string
}

// UserUseCase определяет бизнес-логику учетных записей
type UserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	GetUser(ctx context.Context, p domain.Principal) (*domain.User, error)
	// UpdateUser меняет профиль вызывающего и выпускает новый токен.
	UpdateUser(ctx context.Context, p domain.Principal, in UpdateUserInput) (*Session, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
