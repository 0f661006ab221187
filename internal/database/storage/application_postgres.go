package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Колонки откликов с псевдонимами под вложенные структуры domain.Application.
const applicationSelect = `SELECT
	id, name, email, cover_letter, phone, address,
	resume_storage_id AS "resume.storage_id",
	resume_url        AS "resume.url",
	applicant_user_id AS "applicant.user",
	applicant_role    AS "applicant.role",
	employer_user_id  AS "employer.user",
	employer_role     AS "employer.role"
FROM applications`

type ApplicationStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewApplicationStorage(db *sqlx.DB, logger *slog.Logger) *ApplicationStorage {
	return &ApplicationStorage{db: db, logger: logger}
}

// CreateApplication сохраняет отклик одной вставкой.
func (s *ApplicationStorage) CreateApplication(ctx context.Context, app *domain.Application) error {
	start := time.Now()

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO applications (
		id, name, email, cover_letter, phone, address,
		resume_storage_id, resume_url,
		applicant_user_id, applicant_role,
		employer_user_id, employer_role
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.Name, app.Email, app.CoverLetter, app.Phone, app.Address,
		app.Resume.StorageID, app.Resume.URL,
		app.ApplicantID.User, string(app.ApplicantID.Role),
		app.EmployerID.User, string(app.EmployerID.Role),
	)
	if err != nil {
		s.logger.Error("failed to create application",
			"applicant", app.ApplicantID.User,
			"employer", app.EmployerID.User,
			"error", err,
		)
		return fmt.Errorf("insert application: %w", err)
	}

	s.logger.Info("application created",
		"id", app.ID,
		"applicant", app.ApplicantID.User,
		"employer", app.EmployerID.User,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetApplicationByID получает отклик по ID
func (s *ApplicationStorage) GetApplicationByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	start := time.Now()

	var app domain.Application
	err := s.db.GetContext(ctx, &app, applicationSelect+` WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("application not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get application by id", "id", id, "error", err)
		return nil, fmt.Errorf("select application by id: %w", err)
	}

	s.logger.Info("application retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &app, nil
}

// ListApplications возвращает отклики одной стороны: по соискателю или по работодателю.
func (s *ApplicationStorage) ListApplications(ctx context.Context, scope domain.ApplicationScope) ([]domain.Application, error) {
	start := time.Now()

	var where string
	switch scope.Side {
	case domain.SideApplicant:
		where = ` WHERE applicant_user_id = $1`
	case domain.SideEmployer:
		where = ` WHERE employer_user_id = $1`
	default:
		return nil, fmt.Errorf("unknown application scope side %q", scope.Side)
	}

	apps := []domain.Application{}
	if err := s.db.SelectContext(ctx, &apps, applicationSelect+where, scope.UserID); err != nil {
		s.logger.Error("failed to list applications",
			"side", scope.Side,
			"user_id", scope.UserID,
			"error", err,
		)
		return nil, fmt.Errorf("select applications: %w", err)
	}

	s.logger.Info("listed applications",
		"side", scope.Side,
		"user_id", scope.UserID,
		"count", len(apps),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return apps, nil
}

// DeleteApplication удаляет отклик; false — если удалять было нечего.
func (s *ApplicationStorage) DeleteApplication(ctx context.Context, id uuid.UUID) (bool, error) {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete application", "id", id, "error", err)
		return false, fmt.Errorf("delete application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete application rows affected: %w", err)
	}

	s.logger.Info("application deleted",
		"id", id,
		"deleted", n > 0,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n > 0, nil
}
