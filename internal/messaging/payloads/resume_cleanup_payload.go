package payloads

import "time"

// ResumeCleanupPayload описывает файл резюме, который был загружен,
// но так и не попал в сохраненный отклик.
type ResumeCleanupPayload struct {
	StorageID string    `json:"storage_id"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failed_at"`
}
