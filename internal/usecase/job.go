package usecase

import (
	"context"

	"github.com/GoArmGo/CareerCraft/internal/domain"
)

// JobUseCase определяет бизнес-логику работы с вакансиями.
// Все методы, принимающие Principal, сначала проверяют роль через domain.Authorize.
type JobUseCase interface {
	// CreateJob публикует вакансию от имени работодателя.
	CreateJob(ctx context.Context, p domain.Principal, job domain.Job) (*domain.Job, error)

	// ListActiveJobs возвращает все неистекшие вакансии (публичный список).
	ListActiveJobs(ctx context.Context) ([]domain.Job, error)

	// ListMyJobs возвращает только вакансии, опубликованные пользователем.
	ListMyJobs(ctx context.Context, p domain.Principal) ([]domain.Job, error)

	// GetJob получает одну вакансию по строковому ID из запроса.
	GetJob(ctx context.Context, id string) (*domain.Job, error)

	// UpdateJob применяет частичное обновление и перепроверяет запись целиком.
	UpdateJob(ctx context.Context, p domain.Principal, id string, patch domain.JobPatch) (*domain.Job, error)

	// DeleteJob удаляет вакансию автора.
	DeleteJob(ctx context.Context, p domain.Principal, id string) error
}
