package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/GoArmGo/CareerCraft/internal/messaging/payloads"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("store down")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeJobStorage struct {
	mu    sync.Mutex
	jobs  map[uuid.UUID]domain.Job
	calls int
	err   error

	// afterList вызывается после чтения списка, до возврата результата.
	afterList func()
}

func newFakeJobStorage(jobs ...domain.Job) *fakeJobStorage {
	s := &fakeJobStorage{jobs: map[uuid.UUID]domain.Job{}}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (s *fakeJobStorage) touch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *fakeJobStorage) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := s.touch(); err != nil {
		return err
	}
	job.ID = uuid.New()
	if job.JobPostedOn.IsZero() {
		job.JobPostedOn = time.Now().UTC()
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *fakeJobStorage) GetJobByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (s *fakeJobStorage) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	var out []domain.Job
	for _, j := range s.jobs {
		if !j.Expired {
			out = append(out, j)
		}
	}
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		hook()
	}
	return out, nil
}

// ListJobsByPoster намеренно игнорирует фильтр, чтобы проверить фильтрацию в usecase.
func (s *fakeJobStorage) ListJobsByPoster(ctx context.Context, posterID uuid.UUID) ([]domain.Job, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	out := make([]domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (s *fakeJobStorage) UpdateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if err := s.touch(); err != nil {
		return nil, err
	}
	if _, ok := s.jobs[job.ID]; !ok {
		return nil, nil
	}
	s.jobs[job.ID] = *job
	return job, nil
}

func (s *fakeJobStorage) DeleteJob(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := s.touch(); err != nil {
		return false, err
	}
	if _, ok := s.jobs[id]; !ok {
		return false, nil
	}
	delete(s.jobs, id)
	return true, nil
}

type fakeApplicationStorage struct {
	apps      map[uuid.UUID]domain.Application
	calls     int
	createErr error
}

func newFakeApplicationStorage(apps ...domain.Application) *fakeApplicationStorage {
	s := &fakeApplicationStorage{apps: map[uuid.UUID]domain.Application{}}
	for _, a := range apps {
		s.apps[a.ID] = a
	}
	return s
}

func (s *fakeApplicationStorage) CreateApplication(ctx context.Context, app *domain.Application) error {
	s.calls++
	if s.createErr != nil {
		return s.createErr
	}
	s.apps[app.ID] = *app
	return nil
}

func (s *fakeApplicationStorage) GetApplicationByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	s.calls++
	a, ok := s.apps[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// ListApplications отдает все записи: фильтр области проверяет usecase.
func (s *fakeApplicationStorage) ListApplications(ctx context.Context, scope domain.ApplicationScope) ([]domain.Application, error) {
	s.calls++
	out := make([]domain.Application, 0, len(s.apps))
	for _, a := range s.apps {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeApplicationStorage) DeleteApplication(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	if _, ok := s.apps[id]; !ok {
		return false, nil
	}
	delete(s.apps, id)
	return true, nil
}

type fakeFileStorage struct {
	uploaded []string
	deleted  []string
	err      error
}

func (f *fakeFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, key)
	return "http://files.local/resumes/" + key, nil
}

func (f *fakeFileStorage) DeleteFile(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakePublisher struct {
	published []payloads.ResumeCleanupPayload
	err       error
}

func (p *fakePublisher) PublishResumeCleanup(ctx context.Context, payload payloads.ResumeCleanupPayload) error {
	p.published = append(p.published, payload)
	return p.err
}

// fakeCache хранит списки по поколениям, как Redis.
type fakeCache struct {
	version     int64
	lists       map[int64][]domain.Job
	invalidated int
}

func (c *fakeCache) GetActiveJobs(ctx context.Context) ([]domain.Job, int64, bool, error) {
	jobs, ok := c.lists[c.version]
	return jobs, c.version, ok, nil
}

func (c *fakeCache) SetActiveJobs(ctx context.Context, version int64, jobs []domain.Job) error {
	if c.lists == nil {
		c.lists = map[int64][]domain.Job{}
	}
	c.lists[version] = jobs
	return nil
}

func (c *fakeCache) InvalidateActiveJobs(ctx context.Context) error {
	c.invalidated++
	c.version++
	return nil
}

type fakeUserStorage struct {
	byID map[uuid.UUID]*domain.User
	err  error
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{byID: map[uuid.UUID]*domain.User{}}
}

func (s *fakeUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	if s.err != nil {
		return s.err
	}
	for _, u := range s.byID {
		if u.Email == user.Email {
			return domain.NewConflict("Email already registered!")
		}
	}
	user.ID = uuid.New()
	s.byID[user.ID] = user
	return nil
}

func (s *fakeUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.byID[id], s.err
}

func (s *fakeUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, s.err
		}
	}
	return nil, s.err
}

func (s *fakeUserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	if s.err != nil {
		return s.err
	}
	for id, u := range s.byID {
		if id != user.ID && u.Email == user.Email {
			return domain.NewConflict("Email already registered!")
		}
	}
	stored := *user
	s.byID[user.ID] = &stored
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(user *domain.User) (string, error) {
	return "token-" + user.ID.String(), nil
}

func (fakeTokens) Verify(token string) (domain.Principal, error) {
	return domain.Principal{}, errors.New("not used")
}
