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

const jobColumns = `id, title, description, category, country, city, location,
	fixed_salary, salary_from, salary_to, expired, posted_by, job_posted_on`

type JobStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewJobStorage(db *sqlx.DB, logger *slog.Logger) *JobStorage {
	return &JobStorage{db: db, logger: logger}
}

// CreateJob сохраняет новую вакансию
func (s *JobStorage) CreateJob(ctx context.Context, job *domain.Job) error {
	start := time.Now()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.JobPostedOn.IsZero() {
		job.JobPostedOn = time.Now().UTC()
	}

	query := `
	INSERT INTO jobs (` + jobColumns + `)
	VALUES (:id, :title, :description, :category, :country, :city, :location,
		:fixed_salary, :salary_from, :salary_to, :expired, :posted_by, :job_posted_on)
	`

	if _, err := s.db.NamedExecContext(ctx, query, job); err != nil {
		s.logger.Error("failed to create job", "posted_by", job.PostedBy, "error", err)
		return fmt.Errorf("insert job: %w", err)
	}

	s.logger.Info("job created",
		"id", job.ID,
		"posted_by", job.PostedBy,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetJobByID получает вакансию по ID
func (s *JobStorage) GetJobByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	start := time.Now()

	var job domain.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &job, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("job not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get job by id", "id", id, "error", err)
		return nil, fmt.Errorf("select job by id: %w", err)
	}

	s.logger.Info("job retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &job, nil
}

// ListActiveJobs возвращает все вакансии, у которых не истек срок.
func (s *JobStorage) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	start := time.Now()

	q := `SELECT ` + jobColumns + ` FROM jobs WHERE expired = FALSE ORDER BY job_posted_on DESC`

	jobs := []domain.Job{}
	if err := s.db.SelectContext(ctx, &jobs, q); err != nil {
		s.logger.Error("failed to list active jobs", "error", err)
		return nil, fmt.Errorf("select active jobs: %w", err)
	}

	s.logger.Info("listed active jobs",
		"count", len(jobs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return jobs, nil
}

// ListJobsByPoster возвращает вакансии одного работодателя.
func (s *JobStorage) ListJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]domain.Job, error) {
	start := time.Now()

	q := `SELECT ` + jobColumns + ` FROM jobs WHERE posted_by = $1 ORDER BY job_posted_on DESC`

	jobs := []domain.Job{}
	if err := s.db.SelectContext(ctx, &jobs, q, posterID); err != nil {
		s.logger.Error("failed to list jobs by poster", "posted_by", posterID, "error", err)
		return nil, fmt.Errorf("select jobs by poster: %w", err)
	}

	s.logger.Info("listed jobs by poster",
		"posted_by", posterID,
		"count", len(jobs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return jobs, nil
}

// UpdateJob перезаписывает изменяемые поля вакансии и возвращает новую версию.
// Возвращает (nil, nil), если вакансия успела исчезнуть.
func (s *JobStorage) UpdateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	start := time.Now()

	query := `
	UPDATE jobs SET
		title = :title,
		description = :description,
		category = :category,
		country = :country,
		city = :city,
		location = :location,
		fixed_salary = :fixed_salary,
		salary_from = :salary_from,
		salary_to = :salary_to,
		expired = :expired
	WHERE id = :id
	RETURNING ` + jobColumns

	rows, err := s.db.NamedQueryContext(ctx, query, job)
	if err != nil {
		s.logger.Error("failed to update job", "id", job.ID, "error", err)
		return nil, fmt.Errorf("update job: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("update job: %w", err)
		}
		s.logger.Warn("job vanished before update", "id", job.ID)
		return nil, nil
	}

	var updated domain.Job
	if err := rows.StructScan(&updated); err != nil {
		return nil, fmt.Errorf("scan updated job: %w", err)
	}

	s.logger.Info("job updated",
		"id", job.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &updated, nil
}

// DeleteJob удаляет вакансию; false — если удалять было нечего.
func (s *JobStorage) DeleteJob(ctx context.Context, id uuid.UUID) (bool, error) {
	start := time.Now()

	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete job", "id", id, "error", err)
		return false, fmt.Errorf("delete job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete job rows affected: %w", err)
	}

	s.logger.Info("job deleted",
		"id", id,
		"deleted", n > 0,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n > 0, nil
}
