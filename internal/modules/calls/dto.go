package calls

import "time"

type LogCallRequest struct {
	CalleeID   int64     `json:"callee_id" binding:"required"`
	Kind       string    `json:"kind" binding:"required,oneof=audio video"`
	Status     string    `json:"status" binding:"required,oneof=completed missed declined"`
	DurationMS int64     `json:"duration_ms" binding:"min=0"`
	StartedAt  time.Time `json:"started_at"`
}
