package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/messaging/payloads"
)

type recordingFiles struct {
	deleted []string
	err     error
}

func (f *recordingFiles) UploadFile(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	return "", errors.New("not used")
}

func (f *recordingFiles) DeleteFile(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

type immediateConsumer struct {
	payloads []payloads.ResumeCleanupPayload
	errs     []error
}

func (c *immediateConsumer) StartConsumingResumeCleanups(ctx context.Context, handler func(context.Context, payloads.ResumeCleanupPayload) error) error {
	for _, p := range c.payloads {
		c.errs = append(c.errs, handler(ctx, p))
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResumeCleanupHandler(t *testing.T) {
	files := &recordingFiles{}
	h := resumeCleanupHandler(files, discardLogger())

	err := h(context.Background(), payloads.ResumeCleanupPayload{StorageID: "resumes/a.png", Reason: "job not found", FailedAt: time.Now()})
	if err != nil {
		t.Fatal(err)
	}
	if err := h(context.Background(), payloads.ResumeCleanupPayload{}); err != nil {
		t.Fatalf("empty storage id must be skipped, got %v", err)
	}
	if len(files.deleted) != 1 || files.deleted[0] != "resumes/a.png" {
		t.Fatalf("deleted = %v", files.deleted)
	}

	files.err = errors.New("s3 down")
	if err := h(context.Background(), payloads.ResumeCleanupPayload{StorageID: "resumes/b.png"}); err == nil {
		t.Fatal("storage failure must be returned so the message is requeued")
	}
}

func TestRunWorker(t *testing.T) {
	files := &recordingFiles{}
	consumer := &immediateConsumer{payloads: []payloads.ResumeCleanupPayload{{StorageID: "resumes/c.webp"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runWorker(ctx, consumer, files, discardLogger()); err != nil {
		t.Fatalf("runWorker: %v", err)
	}
	if len(files.deleted) != 1 || consumer.errs[0] != nil {
		t.Fatalf("deleted = %v, errs = %v", files.deleted, consumer.errs)
	}

	if err := runWorker(ctx, nil, files, discardLogger()); err == nil {
		t.Fatal("worker without a consumer must fail")
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestShutdownClosesInReverseOrder(t *testing.T) {
	var order []string
	mk := func(name string, err error) Resource {
		return Resource{Name: name, Closer: closerFunc(func() error {
			order = append(order, name)
			return err
		})}
	}

	a := NewApp(nil, discardLogger(), nil, nil, nil,
		mk("postgres", nil), mk("redis", errors.New("boom")), mk("rabbitmq", nil))

	err := a.Shutdown()
	if err == nil {
		t.Fatal("expected joined error")
	}
	want := []string{"rabbitmq", "redis", "postgres"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v", order)
		}
	}
	if err := a.Shutdown(); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}
