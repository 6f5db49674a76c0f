package domain

import "time"

type CallKind string

const (
	CallKindAudio CallKind = "audio"
	CallKindVideo CallKind = "video"
)

type CallStatus string

const (
	CallStatusCompleted CallStatus = "completed"
	CallStatusMissed    CallStatus = "missed"
	CallStatusDeclined  CallStatus = "declined"
)

// CallRecord is a history entry only. There is no signalling in the backend;
// clients log calls here after the fact.
type CallRecord struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	CallerID   int64      `json:"caller_id" gorm:"not null;index"`
	CalleeID   int64      `json:"callee_id" gorm:"not null;index"`
	Kind       CallKind   `json:"kind" gorm:"not null"`
	Status     CallStatus `json:"status" gorm:"not null"`
	DurationMS int64      `json:"duration_ms"`
	StartedAt  time.Time  `json:"started_at"`
	CreatedAt  time.Time  `json:"created_at"`

	Caller *User `json:"caller,omitempty" gorm:"-"`
	Callee *User `json:"callee,omitempty" gorm:"-"`
}

func (CallRecord) TableName() string {
	return "call_records"
}
