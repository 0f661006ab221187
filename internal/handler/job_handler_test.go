package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/GoArmGo/CareerCraft/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubJobUseCase struct {
	created domain.Job
	patch   domain.JobPatch
}

func (s *stubJobUseCase) CreateJob(ctx context.Context, p domain.Principal, job domain.Job) (*domain.Job, error) {
	s.created = job
	if err := job.Validate(); err != nil {
		return nil, err
	}
	job.ID = uuid.New()
	job.PostedBy = p.ID
	return &job, nil
}

func (s *stubJobUseCase) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	return []domain.Job{{ID: uuid.New(), Title: "Go Developer"}}, nil
}

func (s *stubJobUseCase) ListMyJobs(ctx context.Context, p domain.Principal) ([]domain.Job, error) {
	return nil, nil
}

func (s *stubJobUseCase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewMalformedID("Invalid Job ID format!")
	}
	return nil, domain.NewNotFound("Job not found!")
}

func (s *stubJobUseCase) UpdateJob(ctx context.Context, p domain.Principal, id string, patch domain.JobPatch) (*domain.Job, error) {
	s.patch = patch
	return &domain.Job{ID: uuid.MustParse(id)}, nil
}

func (s *stubJobUseCase) DeleteJob(ctx context.Context, p domain.Principal, id string) error {
	return nil
}

var _ usecase.JobUseCase = (*stubJobUseCase)(nil)

func TestPostJob(t *testing.T) {
	uc := &stubJobUseCase{}
	h := NewJobHandler(uc, testLogger())
	emp := domain.Principal{ID: uuid.New(), Role: domain.RoleEmployer}

	body := `{"title":"Go Developer","description":"Write services","category":"IT","country":"Armenia",` +
		`"city":"Yerevan","location":"12 Abovyan Street, Kentron district","fixedSalary":90000}`
	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)), emp)
	rec := httptest.NewRecorder()

	h.PostJob(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Success bool       `json:"success"`
		Job     domain.Job `json:"job"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Job.PostedBy != emp.ID || *resp.Job.FixedSalary != 90000 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestPostJob_ValidationErrorsListed(t *testing.T) {
	h := NewJobHandler(&stubJobUseCase{}, testLogger())
	emp := domain.Principal{ID: uuid.New(), Role: domain.RoleEmployer}

	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"Go"}`)), emp)
	rec := httptest.NewRecorder()
	h.PostJob(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) == 0 || resp.Errors[0].Message != domain.MsgMissingCompensation {
		t.Fatalf("errors = %+v", resp.Errors)
	}
}

func TestPostJob_BadJSON(t *testing.T) {
	h := NewJobHandler(&stubJobUseCase{}, testLogger())
	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{`)),
		domain.Principal{ID: uuid.New(), Role: domain.RoleEmployer})
	rec := httptest.NewRecorder()

	h.PostJob(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetJob_Errors(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/job/{id}", NewJobHandler(&stubJobUseCase{}, testLogger()).GetJob)

	cases := map[string]int{
		"/job/abc":                 http.StatusBadRequest,
		"/job/" + uuid.NewString(): http.StatusNotFound,
	}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, want)
		}
	}
}

func TestGetAllJobs(t *testing.T) {
	rec := httptest.NewRecorder()
	NewJobHandler(&stubJobUseCase{}, testLogger()).GetAllJobs(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp jobsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || !resp.Success || len(resp.Jobs) != 1 {
		t.Fatalf("status = %d, response = %+v", rec.Code, resp)
	}
}

func TestUpdateJob_PassesExplicitNull(t *testing.T) {
	uc := &stubJobUseCase{}
	r := chi.NewRouter()
	r.Put("/update-job/{id}", NewJobHandler(uc, testLogger()).UpdateJob)

	id := uuid.NewString()
	req := withPrincipal(httptest.NewRequest(http.MethodPut, "/update-job/"+id, bytes.NewBufferString(`{"fixedSalary":null}`)),
		domain.Principal{ID: uuid.New(), Role: domain.RoleEmployer})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !uc.patch.FixedSalary.Set || uc.patch.FixedSalary.Value != nil {
		t.Fatalf("patch = %+v", uc.patch.FixedSalary)
	}
	if uc.patch.SalaryFrom.Set {
		t.Fatal("absent field must stay unset")
	}
}
