package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/CareerCraft/internal/domain"
)

// ResumeFile — файл резюме, прикрепленный к запросу.
type ResumeFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// SubmitApplicationInput — поля формы отклика.
type SubmitApplicationInput struct {
	Name        string
	Email       string
	CoverLetter string
	Phone       string
	Address     string
	JobID       string
	Resume      *ResumeFile
}

// ApplicationUseCase определяет бизнес-логику работы с откликами
type ApplicationUseCase interface {
	// SubmitApplication проводит отклик через все шаги: роль, поля, тип файла,
	// формат ID вакансии, загрузка резюме, поиск вакансии, сохранение.
	// Первый упавший шаг завершает сценарий.
	SubmitApplication(ctx context.Context, p domain.Principal, in SubmitApplicationInput) (*domain.Application, error)

	// ListMyApplications — отклики, поданные соискателем.
	ListMyApplications(ctx context.Context, p domain.Principal) ([]domain.Application, error)

	// ListReceivedApplications — отклики на вакансии работодателя.
	ListReceivedApplications(ctx context.Context, p domain.Principal) ([]domain.Application, error)

	// DeleteApplication удаляет отклик. Удалять может только сам соискатель.
	DeleteApplication(ctx context.Context, p domain.Principal, id string) error
}
