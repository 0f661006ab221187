package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/GoArmGo/CareerCraft/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type jobResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Job     *domain.Job `json:"job,omitempty"`
}

type jobsResponse struct {
	Success bool         `json:"success"`
	Jobs    []domain.Job `json:"jobs"`
}

// JobHandler — обработчик HTTP-запросов для работы с вакансиями.
type JobHandler struct {
	jobUseCase usecase.JobUseCase
	logger     *slog.Logger
}

// NewJobHandler создаёт новый экземпляр JobHandler.
func NewJobHandler(uc usecase.JobUseCase, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobUseCase: uc, logger: logger}
}

// GetAllJobs — публичный список активных вакансий.
func (h *JobHandler) GetAllJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobUseCase.ListActiveJobs(r.Context())
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, jobsResponse{Success: true, Jobs: jobs}, h.logger)
}

// GetJob — одна вакансия по ID.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobUseCase.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, jobResponse{Success: true, Job: job}, h.logger)
}

// PostJob — публикация вакансии работодателем.
func (h *JobHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var in domain.Job
	if err := decodeJSON(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	job, err := h.jobUseCase.CreateJob(r.Context(), p, in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, jobResponse{Success: true, Message: "Job Posted Successfully!", Job: job}, h.logger)
}

// GetMyJobs — вакансии текущего работодателя.
func (h *JobHandler) GetMyJobs(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	jobs, err := h.jobUseCase.ListMyJobs(r.Context(), p)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, jobsResponse{Success: true, Jobs: jobs}, h.logger)
}

// UpdateJob — частичное обновление вакансии ее автором.
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var patch domain.JobPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	job, err := h.jobUseCase.UpdateJob(r.Context(), p, chi.URLParam(r, "id"), patch)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, jobResponse{Success: true, Message: "Job Updated!", Job: job}, h.logger)
}

// DeleteJob — удаление вакансии ее автором.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.jobUseCase.DeleteJob(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, jobResponse{Success: true, Message: "Job Deleted!"}, h.logger)
}
