package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/GoArmGo/CareerCraft/internal/domain"
	"github.com/redis/go-redis/v9"
)

const activeJobsVersionKey = "jobs:list:version"

// activeJobsKey — ключ списка для поколения version. Инвалидация увеличивает
// поколение, поэтому запись, начатая до нее, попадает в ключ, который уже
// никто не читает, и истекает по ttl.
func activeJobsKey(version int64) string {
	return fmt.Sprintf("jobs:list:active:v%d", version)
}

// Redis кэширует публичный список вакансий. Если Redis недоступен,
// все методы работают как промах и не возвращают ошибок.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger

	warnedUnavailable atomic.Bool
}

// NewRedis подключается к Redis. Пустой addr или неудачный ping
// дают кэш-заглушку, который всегда промахивается.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration, logger *slog.Logger) *Redis {
	if addr == "" {
		logger.Info("redis address not set, job list cache disabled")
		return &Redis{ttl: ttl, logger: logger}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing cache", "addr", addr, "error", err)
		_ = client.Close()
		return &Redis{ttl: ttl, logger: logger}
	}

	logger.Info("redis connected", "addr", addr)
	return &Redis{client: client, ttl: ttl, logger: logger}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing cache", "error", err)
	}
}

// GetActiveJobs возвращает закэшированный список активных вакансий
// и текущее поколение кэша.
func (r *Redis) GetActiveJobs(ctx context.Context) ([]domain.Job, int64, bool, error) {
	if r.isUnavailable() {
		return nil, 0, false, nil
	}
	version, err := r.client.Get(ctx, activeJobsVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.warnUnavailableOnce(err)
		return nil, 0, false, err
	}

	b, err := r.client.Get(ctx, activeJobsKey(version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, false, nil
		}
		r.warnUnavailableOnce(err)
		return nil, version, false, err
	}

	var jobs []domain.Job
	if err := json.Unmarshal(b, &jobs); err != nil {
		return nil, version, false, err
	}
	return jobs, version, true, nil
}

// SetActiveJobs сохраняет список на ttl под поколением, прочитанным в GetActiveJobs.
func (r *Redis) SetActiveJobs(ctx context.Context, version int64, jobs []domain.Job) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(jobs)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, activeJobsKey(version), b, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// InvalidateActiveJobs сбрасывает кэш после изменения любой вакансии.
func (r *Redis) InvalidateActiveJobs(ctx context.Context) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Incr(ctx, activeJobsVersionKey).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
