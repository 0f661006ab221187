package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGormDB поднимает GORM поверх уже открытого пула sqlx,
// чтобы оба слоя делили одно соединение с бд.
func NewGormDB(db *sqlx.DB) (*gorm.DB, error) {
	gdb, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm over existing connection: %w", err)
	}
	return gdb, nil
}

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя.
// Повтор email возвращает ошибку вида domain.KindConflict.
func (s *GormUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			s.logger.Warn("email already registered", "email", user.Email)
			return domain.NewConflict("Email already registered!")
		}
		s.logger.Error("failed to create user", "email", user.Email, "error", result.Error)
		return fmt.Errorf("create user with GORM: %w", result.Error)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"role", user.Role,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateUser сохраняет изменённые имя, фамилию и email.
// Занятый другим пользователем email возвращает domain.KindConflict.
func (s *GormUserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	result := s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"name":      user.Name,
		"last_name": user.LastName,
		"email":     user.Email,
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			s.logger.Warn("email already registered", "email", user.Email)
			return domain.NewConflict("Email already registered!")
		}
		s.logger.Error("failed to update user", "user_id", user.ID, "error", result.Error)
		return fmt.Errorf("update user with GORM: %w", result.Error)
	}

	s.logger.Info("user updated",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByID получает пользователя по ID, (nil, nil) если не найден
func (s *GormUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.first(ctx, "id = ?", id)
}

// GetUserByEmail получает пользователя по email, (nil, nil) если не найден
func (s *GormUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *GormUserStorage) first(ctx context.Context, cond string, arg any) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	result := s.db.WithContext(ctx).Where(cond, arg).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get user", "cond", cond, "error", result.Error)
		return nil, fmt.Errorf("select user with GORM: %w", result.Error)
	}

	s.logger.Debug("user retrieved",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}
