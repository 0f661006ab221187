package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/core/ports"
	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/GoArmGo/CareerCraft/internal/messaging/payloads"
	"github.com/google/uuid"
)

// AllowedResumeTypes — допустимые MIME-типы резюме. Только изображения.
var AllowedResumeTypes = []string{
	"image/png",
	"image/jpg",
	"image/jpeg",
	"image/webp",
}

var resumeExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

const (
	MsgInvalidResumeType = "Invalid file type. Please upload your resume in a PNG, JPG, or WEBP format."
	MsgResumeRequired    = "Resume file is required!"
	MsgUploadFailed      = "Failed to upload resume."
	MsgJobNotFound       = "Job not found!"
)

// applicationUseCase implements ApplicationUseCase
type applicationUseCase struct {
	applicationStorage ports.ApplicationStorage
	jobStorage         ports.JobStorage
	fileStorage        ports.FileStorage
	cleanupPublisher   ports.ResumeCleanupPublisher
	logger             *slog.Logger
	now                func() time.Time
}

// NewApplicationUseCase создает новый экземпляр ApplicationUseCase.
// cleanupPublisher может быть nil: тогда осиротевшие резюме остаются в хранилище.
func NewApplicationUseCase(
	applicationStorage ports.ApplicationStorage,
	jobStorage ports.JobStorage,
	fileStorage ports.FileStorage,
	cleanupPublisher ports.ResumeCleanupPublisher,
	logger *slog.Logger,
) ApplicationUseCase {
	return &applicationUseCase{
		applicationStorage: applicationStorage,
		jobStorage:         jobStorage,
		fileStorage:        fileStorage,
		cleanupPublisher:   cleanupPublisher,
		logger:             logger,
		now:                time.Now,
	}
}

func (uc *applicationUseCase) SubmitApplication(ctx context.Context, p domain.Principal, in SubmitApplicationInput) (*domain.Application, error) {
	// 1. Роль
	if err := domain.Authorize(p.Role, domain.OpSubmitApplication); err != nil {
		return nil, err
	}

	// 2. Обязательные поля
	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	// 3. Тип файла
	contentType := strings.ToLower(strings.TrimSpace(in.Resume.ContentType))
	if !slices.Contains(AllowedResumeTypes, contentType) {
		return nil, &domain.Error{
			Kind:    domain.KindValidationFailed,
			Message: MsgInvalidResumeType,
			Fields:  []domain.FieldError{{Field: "resume", Message: MsgInvalidResumeType}},
		}
	}

	// 4. Формат ID вакансии
	jobID, err := parseJobID(strings.TrimSpace(in.JobID))
	if err != nil {
		return nil, err
	}

	// 5. Загрузка резюме. До поиска вакансии: сбой хранилища не трогает бд.
	key := resumeKey(in.Resume.Filename, contentType)
	url, err := uc.fileStorage.UploadFile(ctx, key, in.Resume.Content, contentType)
	if err != nil {
		uc.logger.Error("resume upload failed", "applicant", p.ID, "error", err)
		return nil, domain.NewUpstream(MsgUploadFailed, err)
	}
	resume := domain.Resume{StorageID: key, URL: url}

	// 6. Поиск вакансии
	job, err := uc.jobStorage.GetJobByID(ctx, jobID)
	if err != nil {
		uc.orphaned(ctx, key, "job lookup failed")
		return nil, domain.NewUpstream("Database error occurred while fetching job details.", err)
	}
	if job == nil {
		uc.orphaned(ctx, key, "job not found")
		return nil, domain.NewNotFound(MsgJobNotFound)
	}

	// 7. Перекрестные ссылки
	applicantID, employerID := domain.NewCrossReference(p.ID, job)

	// 8. Сохранение
	app := &domain.Application{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		Resume:      resume,
		ApplicantID: applicantID,
		EmployerID:  employerID,
	}
	if err := uc.applicationStorage.CreateApplication(ctx, app); err != nil {
		uc.orphaned(ctx, key, "application insert failed")
		return nil, domain.NewUpstream("Failed to create application.", err)
	}

	uc.logger.Info("application submitted",
		"application_id", app.ID,
		"job_id", job.ID,
		"applicant", applicantID.User,
		"employer", employerID.User,
	)
	return app, nil
}

// validateSubmission проверяет наличие файла и всех полей формы.
func validateSubmission(in SubmitApplicationInput) error {
	if in.Resume == nil || in.Resume.Content == nil {
		return &domain.Error{
			Kind:    domain.KindValidationFailed,
			Message: MsgResumeRequired,
			Fields:  []domain.FieldError{{Field: "resume", Message: MsgResumeRequired}},
		}
	}

	var fields []domain.FieldError
	required := []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"coverLetter", in.CoverLetter},
		{"phone", in.Phone},
		{"address", in.Address},
		{"jobId", in.JobID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, domain.FieldError{Field: f.name, Message: f.name + " is required"})
		}
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			fields = append(fields, domain.FieldError{Field: "email", Message: "Please provide a valid email"})
		}
	}

	if len(fields) > 0 {
		return domain.NewFieldValidation(fields)
	}
	return nil
}

// resumeKey строит уникальный ключ объекта. Расширение берется из имени файла,
// а если его нет — из MIME-типа.
func resumeKey(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = resumeExtensions[contentType]
	}
	return fmt.Sprintf("resumes/%s%s", uuid.NewString(), ext)
}

// orphaned фиксирует загруженный файл, который не попадет в отклик.
// Без публикатора файл остается в хранилище.
func (uc *applicationUseCase) orphaned(ctx context.Context, storageID, reason string) {
	if uc.cleanupPublisher == nil {
		uc.logger.Warn("resume left orphaned in file storage", "storage_id", storageID, "reason", reason)
		return
	}

	payload := payloads.ResumeCleanupPayload{
		StorageID: storageID,
		Reason:    reason,
		FailedAt:  uc.now().UTC(),
	}
	if err := uc.cleanupPublisher.PublishResumeCleanup(ctx, payload); err != nil {
		uc.logger.Error("failed to schedule orphaned resume cleanup", "storage_id", storageID, "error", err)
	}
}

func (uc *applicationUseCase) ListMyApplications(ctx context.Context, p domain.Principal) ([]domain.Application, error) {
	if err := domain.Authorize(p.Role, domain.OpListOwnApplications); err != nil {
		return nil, err
	}
	return uc.list(ctx, domain.ApplicationScope{Side: domain.SideApplicant, UserID: p.ID})
}

func (uc *applicationUseCase) ListReceivedApplications(ctx context.Context, p domain.Principal) ([]domain.Application, error) {
	if err := domain.Authorize(p.Role, domain.OpListReceivedApplications); err != nil {
		return nil, err
	}
	return uc.list(ctx, domain.ApplicationScope{Side: domain.SideEmployer, UserID: p.ID})
}

func (uc *applicationUseCase) list(ctx context.Context, scope domain.ApplicationScope) ([]domain.Application, error) {
	apps, err := uc.applicationStorage.ListApplications(ctx, scope)
	if err != nil {
		return nil, domain.NewUpstream("Failed to fetch applications.", err)
	}
	return domain.FilterApplications(scope, apps), nil
}

func (uc *applicationUseCase) DeleteApplication(ctx context.Context, p domain.Principal, id string) error {
	if err := domain.Authorize(p.Role, domain.OpDeleteOwnApplication); err != nil {
		return err
	}

	appID, err := uuid.Parse(id)
	if err != nil {
		return domain.NewMalformedID("Invalid Application ID format!")
	}

	app, err := uc.applicationStorage.GetApplicationByID(ctx, appID)
	if err != nil {
		return domain.NewUpstream("Failed to fetch application.", err)
	}
	if app == nil {
		return domain.NewNotFound("Oops, Application not found!")
	}

	scope, err := domain.ApplicationScopeFor(p)
	if err != nil {
		return err
	}
	if !scope.Includes(app) {
		return domain.NewOwnershipDenied("You can only delete your own applications!")
	}

	deleted, err := uc.applicationStorage.DeleteApplication(ctx, appID)
	if err != nil {
		return domain.NewUpstream("Failed to delete application.", err)
	}
	if !deleted {
		return domain.NewNotFound("Oops, Application not found!")
	}

	uc.logger.Info("application deleted", "application_id", appID, "applicant", p.ID)
	return nil
}
