package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/core/ports"
	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/google/uuid"
)

// jobUseCase implements JobUseCase
type jobUseCase struct {
	jobStorage ports.JobStorage
	cache      ports.JobListCache
	logger     *slog.Logger
}

// NewJobUseCase создает новый экземпляр JobUseCase
func NewJobUseCase(jobStorage ports.JobStorage, cache ports.JobListCache, logger *slog.Logger) JobUseCase {
	return &jobUseCase{
		jobStorage: jobStorage,
		cache:      cache,
		logger:     logger,
	}
}

func parseJobID(id string) (uuid.UUID, error) {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewMalformedID("Invalid Job ID format!")
	}
	return jobID, nil
}

func (uc *jobUseCase) CreateJob(ctx context.Context, p domain.Principal, job domain.Job) (*domain.Job, error) {
	if err := domain.Authorize(p.Role, domain.OpCreateJob); err != nil {
		return nil, err
	}

	job.ID = uuid.Nil
	job.PostedBy = p.ID
	job.Expired = false
	job.JobPostedOn = time.Time{}
	job.NormalizeCompensation()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	if err := uc.jobStorage.CreateJob(ctx, &job); err != nil {
		return nil, domain.NewUpstream("Failed to create job.", err)
	}

	uc.invalidate(ctx)
	uc.logger.Info("job posted", "job_id", job.ID, "posted_by", p.ID)
	return &job, nil
}

func (uc *jobUseCase) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, version, ok, err := uc.cache.GetActiveJobs(ctx)
	if err != nil {
		uc.logger.Warn("job list cache read failed", "error", err)
	}
	if ok {
		return jobs, nil
	}

	jobs, err = uc.jobStorage.ListActiveJobs(ctx)
	if err != nil {
		return nil, domain.NewUpstream("Failed to fetch jobs.", err)
	}

	if err := uc.cache.SetActiveJobs(ctx, version, jobs); err != nil {
		uc.logger.Warn("job list cache write failed", "error", err)
	}
	return jobs, nil
}

func (uc *jobUseCase) ListMyJobs(ctx context.Context, p domain.Principal) ([]domain.Job, error) {
	if err := domain.Authorize(p.Role, domain.OpListOwnJobs); err != nil {
		return nil, err
	}

	jobs, err := uc.jobStorage.ListJobsByPoster(ctx, p.ID)
	if err != nil {
		return nil, domain.NewUpstream("Failed to fetch your jobs.", err)
	}
	return domain.FilterOwnedJobs(p, jobs), nil
}

func (uc *jobUseCase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	jobID, err := parseJobID(id)
	if err != nil {
		return nil, err
	}

	job, err := uc.jobStorage.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, domain.NewUpstream("Failed to fetch job.", err)
	}
	if job == nil {
		return nil, domain.NewNotFound("Job not found!")
	}
	return job, nil
}

// loadOwnedJob находит вакансию и проверяет, что ее автор — p.
// Отсутствие записи проверяется раньше владения.
func (uc *jobUseCase) loadOwnedJob(ctx context.Context, p domain.Principal, id string) (*domain.Job, error) {
	job, err := uc.GetJob(ctx, id)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NewNotFound("Oops Job not found!")
		}
		return nil, err
	}
	if !domain.OwnsJob(p, job) {
		return nil, domain.NewOwnershipDenied("You can only manage jobs you have posted!")
	}
	return job, nil
}

func (uc *jobUseCase) UpdateJob(ctx context.Context, p domain.Principal, id string, patch domain.JobPatch) (*domain.Job, error) {
	if err := domain.Authorize(p.Role, domain.OpUpdateJob); err != nil {
		return nil, err
	}

	current, err := uc.loadOwnedJob(ctx, p, id)
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(*current)
	merged.NormalizeCompensation()
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.jobStorage.UpdateJob(ctx, &merged)
	if err != nil {
		return nil, domain.NewUpstream("Failed to update job.", err)
	}
	if updated == nil {
		return nil, domain.NewNotFound("Oops Job not found!")
	}

	uc.invalidate(ctx)
	uc.logger.Info("job updated", "job_id", updated.ID, "posted_by", p.ID)
	return updated, nil
}

func (uc *jobUseCase) DeleteJob(ctx context.Context, p domain.Principal, id string) error {
	if err := domain.Authorize(p.Role, domain.OpDeleteJob); err != nil {
		return err
	}

	job, err := uc.loadOwnedJob(ctx, p, id)
	if err != nil {
		return err
	}

	deleted, err := uc.jobStorage.DeleteJob(ctx, job.ID)
	if err != nil {
		return domain.NewUpstream("Failed to delete job.", err)
	}
	if !deleted {
		return domain.NewNotFound("Oops Job not found!")
	}

	uc.invalidate(ctx)
	uc.logger.Info("job deleted", "job_id", job.ID, "posted_by", p.ID)
	return nil
}

func (uc *jobUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.InvalidateActiveJobs(ctx); err != nil {
		uc.logger.Warn("job list cache invalidation failed", "error", err)
	}
}
