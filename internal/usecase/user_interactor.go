package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/GoArmGo/CareerCraft/internal/auth"
	"github.com/GoArmGo/CareerCraft/internal/core/ports"
	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const msgInvalidCredentials = "Invalid Email Or Password!"

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	tokens      auth.TokenService
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(userStorage ports.UserStorage, tokens auth.TokenService, logger *slog.Logger) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		tokens:      tokens,
		logger:      logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	fields := validateProfile(in.Name, in.Email)
	if in.Phone == "" {
		fields = append(fields, domain.FieldError{Field: "phone", Message: "phone is required"})
	}
	if utf8.RuneCountInString(in.Password) < 6 {
		fields = append(fields, domain.FieldError{Field: "password", Message: "password must contain at least 6 characters!"})
	}
	role, ok := domain.ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		fields = append(fields, domain.FieldError{Field: "role", Message: "role must be either Job Seeker or Employer"})
	}
	if len(fields) > 0 {
		return nil, domain.NewFieldValidation(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewUpstream("Failed to register user.", fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		Name:         in.Name,
		LastName:     strings.TrimSpace(in.LastName),
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return nil, err
		}
		return nil, domain.NewUpstream("Failed to register user.", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return uc.session(user)
}

func (uc *userUseCase) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return nil, domain.NewValidation("Please provide email, password and role!")
	}

	user, err := uc.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewUpstream("Failed to log in.", err)
	}
	if user == nil {
		return nil, domain.NewValidation(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.NewValidation(msgInvalidCredentials)
		}
		return nil, domain.NewUpstream("Failed to log in.", err)
	}

	if string(user.Role) != strings.TrimSpace(in.Role) {
		return nil, domain.NewNotFound(fmt.Sprintf("User with provided email and %s not found!", strings.TrimSpace(in.Role)))
	}

	uc.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return uc.session(user)
}

func (uc *userUseCase) GetUser(ctx context.Context, p domain.Principal) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByID(ctx, p.ID)
	if err != nil {
		return nil, domain.NewUpstream("Failed to fetch user.", err)
	}
	if user == nil {
		return nil, domain.NewNotFound("User not found!")
	}
	return user, nil
}

func (uc *userUseCase) UpdateUser(ctx context.Context, p domain.Principal, in UpdateUserInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if fields := validateProfile(in.Name, in.Email); len(fields) > 0 {
		return nil, domain.NewFieldValidation(fields)
	}

	user, err := uc.userStorage.GetUserByID(ctx, p.ID)
	if err != nil {
		return nil, domain.NewUpstream("Failed to update user.", err)
	}
	if user == nil {
		return nil, domain.NewNotFound("User not found!")
	}

	updated := *user
	updated.Name = in.Name
	updated.LastName = in.LastName
	updated.Email = in.Email
	if err := uc.userStorage.UpdateUser(ctx, &updated); err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			return nil, err
		}
		return nil, domain.NewUpstream("Failed to update user.", err)
	}

	uc.logger.Info("user updated", "user_id", updated.ID)
	return uc.session(&updated)
}

func (uc *userUseCase) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.NewMalformedID("Invalid User ID format!")
	}

	user, err := uc.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewUpstream("Failed to fetch user.", err)
	}
	if user == nil {
		return nil, domain.NewNotFound("User not found")
	}
	return user, nil
}

// validateProfile проверяет поля, общие для регистрации и редактирования профиля.
func validateProfile(name, email string) []domain.FieldError {
	var fields []domain.FieldError
	if n := utf8.RuneCountInString(name); n == 0 {
		fields = append(fields, domain.FieldError{Field: "name", Message: "name is required"})
	} else if n < 3 || n > 30 {
		fields = append(fields, domain.FieldError{Field: "name", Message: "name must contain between 3 and 30 characters!"})
	}
	if email == "" {
		fields = append(fields, domain.FieldError{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	return fields
}

func (uc *userUseCase) session(user *domain.User) (*Session, error) {
	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, domain.NewUpstream("Failed to issue session token.", err)
	}
	return &Session{User: user, Token: token}, nil
}
