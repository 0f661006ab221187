package ports

import (
	"context"

	"github.com/GoArmGo/CareerCraft/internal/messaging/payloads"
)

// ResumeCleanupPublisher публикует задачи на удаление осиротевших резюме.
// Используется сценарием подачи отклика, если после загрузки файла шаг упал.
type ResumeCleanupPublisher interface {
	PublishResumeCleanup(ctx context.Context, payload payloads.ResumeCleanupPayload) error
}

// ResumeCleanupConsumer читает задачи на удаление резюме, используется воркером.
type ResumeCleanupConsumer interface {
	// StartConsumingResumeCleanups начинает прослушивание очереди;
	// handler вызывается для каждого полученного сообщения.
	StartConsumingResumeCleanups(ctx context.Context, handler func(context.Context, payloads.ResumeCleanupPayload) error) error
}
