package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/GoArmGo/CareerCraft/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type applicationResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	Application *domain.Application `json:"application,omitempty"`
}

type applicationsResponse struct {
	Success      bool                 `json:"success"`
	Applications []domain.Application `json:"applications"`
}

// ApplicationHandler — обработчик HTTP-запросов для работы с откликами.
type ApplicationHandler struct {
	applicationUseCase usecase.ApplicationUseCase
	maxResumeBytes     int64
	logger             *slog.Logger
}

// NewApplicationHandler создаёт новый экземпляр ApplicationHandler.
func NewApplicationHandler(uc usecase.ApplicationUseCase, maxResumeBytes int64, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applicationUseCase: uc,
		maxResumeBytes:     maxResumeBytes,
		logger:             logger,
	}
}

// PostApplication принимает multipart-форму с полями отклика и файлом resume.
func (h *ApplicationHandler) PostApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	// Роль проверяется до чтения тела, иначе работодатель с большим файлом
	// получил бы 413 вместо отказа по роли.
	if err := domain.Authorize(p.Role, domain.OpSubmitApplication); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	// Запас на поля формы сверх размера файла.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxResumeBytes+1<<20)

	// Форма, которую не удалось разобрать, передается пустой: обязательные
	// поля проверяет сценарий отклика.
	var in usecase.SubmitApplicationInput
	if err := r.ParseMultipartForm(h.maxResumeBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Resume file is too large!", h.logger)
			return
		}
		h.logger.Warn("failed to parse multipart form", "error", err)
	} else {
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				h.logger.Warn("failed to remove multipart temp files", "error", err)
			}
		}()

		in = usecase.SubmitApplicationInput{
			Name:        r.FormValue("name"),
			Email:       r.FormValue("email"),
			CoverLetter: r.FormValue("coverLetter"),
			Phone:       r.FormValue("phone"),
			Address:     r.FormValue("address"),
			JobID:       r.FormValue("jobId"),
		}

		file, header, err := r.FormFile("resume")
		if err == nil {
			defer file.Close()
			in.Resume = &usecase.ResumeFile{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Content:     file,
			}
		}
	}

	app, err := h.applicationUseCase.SubmitApplication(r.Context(), p, in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, applicationResponse{
		Success:     true,
		Message:     "Application Submitted!",
		Application: app,
	}, h.logger)
}

// EmployerGetAllApplications — отклики на вакансии работодателя.
func (h *ApplicationHandler) EmployerGetAllApplications(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	apps, err := h.applicationUseCase.ListReceivedApplications(r.Context(), p)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, applicationsResponse{Success: true, Applications: apps}, h.logger)
}

// JobSeekerGetAllApplications — отклики, поданные соискателем.
func (h *ApplicationHandler) JobSeekerGetAllApplications(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	apps, err := h.applicationUseCase.ListMyApplications(r.Context(), p)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, applicationsResponse{Success: true, Applications: apps}, h.logger)
}

// JobSeekerDeleteApplication — отзыв отклика соискателем.
func (h *ApplicationHandler) JobSeekerDeleteApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.applicationUseCase.DeleteApplication(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, applicationResponse{Success: true, Message: "Application Deleted!"}, h.logger)
}
