package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/CareerCraft/internal/core/ports"
	"github.com/GoArmGo/CareerCraft/internal/messaging/payloads"
)

// resumeCleanupHandler удаляет из хранилища резюме, не попавшее в отклик.
// Удаление отсутствующего объекта в S3 не считается ошибкой, поэтому
// повторная доставка сообщения безопасна.
func resumeCleanupHandler(files ports.FileStorage, logger *slog.Logger) func(context.Context, payloads.ResumeCleanupPayload) error {
	return func(ctx context.Context, payload payloads.ResumeCleanupPayload) error {
		if payload.StorageID == "" {
			logger.Warn("resume cleanup without storage id, skipping")
			return nil
		}

		logger.Info("removing orphaned resume",
			"storage_id", payload.StorageID,
			"reason", payload.Reason,
			"failed_at", payload.FailedAt,
		)
		if err := files.DeleteFile(ctx, payload.StorageID); err != nil {
			return fmt.Errorf("delete orphaned resume %s: %w", payload.StorageID, err)
		}
		return nil
	}
}

// runWorker запускает потребителя RabbitMQ и блокируется до отмены ctx.
func runWorker(ctx context.Context, consumer ports.ResumeCleanupConsumer, files ports.FileStorage, logger *slog.Logger) error {
	if consumer == nil {
		return fmt.Errorf("worker mode requires RABBITMQ_URL")
	}

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingResumeCleanups(workerCtx, resumeCleanupHandler(files, logger)); err != nil {
		return fmt.Errorf("start RabbitMQ consumer: %w", err)
	}
	logger.Info("worker started, waiting for resume cleanup messages")

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping worker")
	return nil
}
