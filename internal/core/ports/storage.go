package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/google/uuid"
)

// JobStorage определяет методы для взаимодействия с хранилищем вакансий.
// Get-методы возвращают (nil, nil), если запись не найдена.
type JobStorage interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJobByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ListActiveJobs(ctx context.Context) ([]domain.Job, error)
	ListJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]domain.Job, error)
	UpdateJob(ctx context.Context, job *domain.Job) (*domain.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) (bool, error)
}

// ApplicationStorage определяет методы для взаимодействия с хранилищем откликов
type ApplicationStorage interface {
	CreateApplication(ctx context.Context, app *domain.Application) error
	GetApplicationByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListApplications(ctx context.Context, scope domain.ApplicationScope) ([]domain.Application, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadFile загружает файл под ключом key и возвращает его публичный URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	DeleteFile(ctx context.Context, key string) error
}

// JobListCache кэширует публичный список активных вакансий.
// Промах кэша — (nil, version, false, nil). Список, прочитанный из хранилища
// после промаха, записывается с тем же version: если между чтением и записью
// прошла инвалидация, запись не будет видна.
type JobListCache interface {
	GetActiveJobs(ctx context.Context) ([]domain.Job, int64, bool, error)
	SetActiveJobs(ctx context.Context, version int64, jobs []domain.Job) error
	InvalidateActiveJobs(ctx context.Context) error
}
