package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/google/uuid"
)

func i64(v int64) *int64 { return &v }

func sampleJob(postedBy uuid.UUID) domain.Job {
	return domain.Job{
		ID:          uuid.New(),
		Title:       "Backend Developer",
		Description: "Build and run the job board services.",
		Category:    "Software",
		Country:     "Armenia",
		City:        "Yerevan",
		Location:    "12 Abovyan Street, Kentron district",
		FixedSalary: i64(50000),
		PostedBy:    postedBy,
	}
}

func employer() domain.Principal  { return domain.Principal{ID: uuid.New(), Role: domain.RoleEmployer} }
func jobSeeker() domain.Principal { return domain.Principal{ID: uuid.New(), Role: domain.RoleJobSeeker} }

func TestCreateJob(t *testing.T) {
	store := newFakeJobStorage()
	cache := &fakeCache{}
	uc := NewJobUseCase(store, cache, testLogger())
	p := employer()

	in := sampleJob(uuid.New())
	job, err := uc.CreateJob(context.Background(), p, in)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.PostedBy != p.ID {
		t.Fatalf("postedBy = %s, want %s", job.PostedBy, p.ID)
	}
	if _, ok := store.jobs[job.ID]; !ok {
		t.Fatal("job not stored")
	}
	if cache.invalidated != 1 {
		t.Fatalf("cache invalidated %d times", cache.invalidated)
	}
}

// Дату публикации ставит хранилище, значение из запроса отбрасывается.
func TestCreateJob_IgnoresClientPostedOn(t *testing.T) {
	store := newFakeJobStorage()
	uc := NewJobUseCase(store, &fakeCache{}, testLogger())
	start := time.Now().UTC().Add(-time.Second)

	in := sampleJob(uuid.Nil)
	in.JobPostedOn = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	in.Expired = true

	job, err := uc.CreateJob(context.Background(), employer(), in)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.JobPostedOn.Before(start) {
		t.Fatalf("jobPostedOn = %s, want server time", job.JobPostedOn)
	}
	if stored := store.jobs[job.ID]; !stored.JobPostedOn.Equal(job.JobPostedOn) || stored.Expired {
		t.Fatalf("stored = %+v", stored)
	}
}

// Работодатель указывает и фиксированную оплату, и диапазон.
func TestCreateJob_ConflictingCompensation(t *testing.T) {
	store := newFakeJobStorage()
	uc := NewJobUseCase(store, &fakeCache{}, testLogger())

	in := sampleJob(uuid.Nil)
	in.FixedSalary = i64(50000)
	in.SalaryFrom = i64(40000)
	in.SalaryTo = i64(60000)

	_, err := uc.CreateJob(context.Background(), employer(), in)
	if domain.KindOf(err) != domain.KindValidationFailed {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
	if err.Error() != domain.MsgConflictingCompensation {
		t.Fatalf("message = %q", err.Error())
	}
	if store.calls != 0 || len(store.jobs) != 0 {
		t.Fatal("nothing must be written")
	}
}

// Соискатель пытается удалить вакансию: отказ до обращения к хранилищу.
func TestDeleteJob_JobSeekerDeniedBeforeStore(t *testing.T) {
	owner := employer()
	job := sampleJob(owner.ID)
	store := newFakeJobStorage(job)
	uc := NewJobUseCase(store, &fakeCache{}, testLogger())

	err := uc.DeleteJob(context.Background(), jobSeeker(), job.ID.String())
	if domain.KindOf(err) != domain.KindAuthorizationDenied {
		t.Fatalf("expected AuthorizationDenied, got %v", err)
	}
	if err.Error() != "Job Seeker is not allowed to access this resource!" {
		t.Fatalf("message = %q", err.Error())
	}
	if store.calls != 0 {
		t.Fatalf("store touched %d times", store.calls)
	}
	if _, ok := store.jobs[job.ID]; !ok {
		t.Fatal("job must remain")
	}
}

func TestDeleteJob_MissingBeforeOwnership(t *testing.T) {
	owner := employer()
	job := sampleJob(owner.ID)
	store := newFakeJobStorage(job)
	uc := NewJobUseCase(store, &fakeCache{}, testLogger())
	ctx := context.Background()

	if err := uc.DeleteJob(ctx, employer(), uuid.NewString()); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("missing job: expected NotFound, got %v", err)
	}
	if err := uc.DeleteJob(ctx, employer(), job.ID.String()); domain.KindOf(err) != domain.KindOwnershipDenied {
		t.Fatalf("foreign job: expected OwnershipDenied, got %v", err)
	}
	if err := uc.DeleteJob(ctx, owner, "not-a-uuid"); domain.KindOf(err) != domain.KindMalformedIdentifier {
		t.Fatalf("bad id: expected MalformedIdentifier, got %v", err)
	}
	if _, ok := store.jobs[job.ID]; !ok {
		t.Fatal("job must remain after rejected deletes")
	}

	if err := uc.DeleteJob(ctx, owner, job.ID.String()); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := store.jobs[job.ID]; ok {
		t.Fatal("job must be deleted")
	}
}

func TestUpdateJob_RejectsInvalidMerge(t *testing.T) {
	owner := employer()
	job := sampleJob(owner.ID)
	store := newFakeJobStorage(job)
	uc := NewJobUseCase(store, &fakeCache{}, testLogger())

	var patch domain.JobPatch
	if err := json.Unmarshal([]byte(`{"salaryFrom":40000,"salaryTo":60000}`), &patch); err != nil {
		t.Fatal(err)
	}
	_, err := uc.UpdateJob(context.Background(), owner, job.ID.String(), patch)
	if domain.KindOf(err) != domain.KindValidationFailed {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
	if stored := store.jobs[job.ID]; stored.SalaryFrom != nil {
		t.Fatal("stored job must be unchanged")
	}

	if err := json.Unmarshal([]byte(`{"fixedSalary":null,"salaryFrom":40000,"salaryTo":60000}`), &patch); err != nil {
		t.Fatal(err)
	}
	updated, err := uc.UpdateJob(context.Background(), owner, job.ID.String(), patch)
	if err != nil {
		t.Fatalf("switch to range: %v", err)
	}
	if updated.FixedSalary != nil || *updated.SalaryTo != 60000 {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestUpdateJob_OnlyOwner(t *testing.T) {
	job := sampleJob(uuid.New())
	uc := NewJobUseCase(newFakeJobStorage(job), &fakeCache{}, testLogger())

	title := "Another title"
	_, err := uc.UpdateJob(context.Background(), employer(), job.ID.String(), domain.JobPatch{Title: &title})
	if domain.KindOf(err) != domain.KindOwnershipDenied {
		t.Fatalf("expected OwnershipDenied, got %v", err)
	}
}

func TestListMyJobs_FiltersByPoster(t *testing.T) {
	me := employer()
	store := newFakeJobStorage(sampleJob(me.ID), sampleJob(uuid.New()), sampleJob(me.ID))
	uc := NewJobUseCase(store, &fakeCache{}, testLogger())

	jobs, err := uc.ListMyJobs(context.Background(), me)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	for _, j := range jobs {
		if j.PostedBy != me.ID {
			t.Fatalf("foreign job leaked: %s", j.ID)
		}
	}

	if _, err := uc.ListMyJobs(context.Background(), jobSeeker()); domain.KindOf(err) != domain.KindAuthorizationDenied {
		t.Fatalf("job seeker: %v", err)
	}
}

func TestListActiveJobs_UsesCache(t *testing.T) {
	store := newFakeJobStorage(sampleJob(uuid.New()))
	cache := &fakeCache{}
	uc := NewJobUseCase(store, cache, testLogger())
	ctx := context.Background()

	if _, err := uc.ListActiveJobs(ctx); err != nil {
		t.Fatal(err)
	}
	calls := store.calls
	jobs, err := uc.ListActiveJobs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if store.calls != calls {
		t.Fatal("second call must be served from cache")
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs", len(jobs))
	}
}

// Вакансия создана, пока список читался из хранилища: устаревший список
// не должен попасть в кэш.
func TestListActiveJobs_InvalidationDuringReadIsNotCached(t *testing.T) {
	store := newFakeJobStorage(sampleJob(uuid.New()))
	cache := &fakeCache{}
	uc := NewJobUseCase(store, cache, testLogger())
	ctx := context.Background()

	store.afterList = func() {
		if _, err := uc.CreateJob(ctx, employer(), sampleJob(uuid.Nil)); err != nil {
			t.Errorf("CreateJob: %v", err)
		}
	}

	stale, err := uc.ListActiveJobs(ctx)
	if err != nil || len(stale) != 1 {
		t.Fatalf("first read = %d jobs, %v", len(stale), err)
	}

	fresh, err := uc.ListActiveJobs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 2 {
		t.Fatalf("got %d jobs, stale list was served from cache", len(fresh))
	}
}

func TestListActiveJobs_StoreFailure(t *testing.T) {
	store := newFakeJobStorage()
	store.err = errStoreDown
	uc := NewJobUseCase(store, &fakeCache{}, testLogger())

	_, err := uc.ListActiveJobs(context.Background())
	if domain.KindOf(err) != domain.KindUpstreamFailure {
		t.Fatalf("expected UpstreamFailure, got %v", err)
	}
}

func TestGetJob(t *testing.T) {
	job := sampleJob(uuid.New())
	uc := NewJobUseCase(newFakeJobStorage(job), &fakeCache{}, testLogger())
	ctx := context.Background()

	got, err := uc.GetJob(ctx, job.ID.String())
	if err != nil || got.ID != job.ID {
		t.Fatalf("GetJob = %+v, %v", got, err)
	}
	if _, err := uc.GetJob(ctx, "123"); domain.KindOf(err) != domain.KindMalformedIdentifier {
		t.Fatalf("malformed: %v", err)
	}
	if _, err := uc.GetJob(ctx, uuid.NewString()); domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("missing: %v", err)
	}
}
