package status

import (
	"time"

	"famchat/internal/domain"
)

// EffectiveExpiry resolves the instant a status stops being visible:
// the explicit expires_at when set, otherwise created_at + the default TTL.
// A record with neither usable timestamp resolves to nil and is never shown
// (fail-closed; a malformed row must not become permanently live).
func EffectiveExpiry(st *domain.Status) *time.Time {
	if st.ExpiresAt != nil && !st.ExpiresAt.IsZero() {
		exp := *st.ExpiresAt
		return &exp
	}
	if st.CreatedAt.IsZero() {
		return nil
	}
	exp := st.CreatedAt.Add(domain.StatusTTL)
	return &exp
}

// IsLive reports whether the status is still visible at now. Every consumer
// evaluates this independently at read time; nothing writes an "expired"
// flag back, physical deletion is the sweep's job.
func IsLive(st *domain.Status, now time.Time) bool {
	exp := EffectiveExpiry(st)
	return exp != nil && now.Before(*exp)
}
