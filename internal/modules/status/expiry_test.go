package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"famchat/internal/domain"
)

func ts(t time.Time) *time.Time { return &t }

func TestEffectiveExpiry_ExplicitWins(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	explicit := created.Add(1 * time.Hour)

	st := &domain.Status{CreatedAt: created, ExpiresAt: ts(explicit)}

	got := EffectiveExpiry(st)
	assert.NotNil(t, got)
	assert.True(t, got.Equal(explicit), "explicit expires_at must win over created_at+TTL")
}

func TestEffectiveExpiry_DefaultsToCreatedPlusTTL(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st := &domain.Status{CreatedAt: created}

	got := EffectiveExpiry(st)
	assert.NotNil(t, got)
	assert.True(t, got.Equal(created.Add(24*time.Hour)))
}

func TestEffectiveExpiry_NoUsableTimestamps(t *testing.T) {
	st := &domain.Status{}
	assert.Nil(t, EffectiveExpiry(st), "a record with no usable timestamp has no expiry")
}

func TestIsLive_DefaultTTLWindow(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	st := &domain.Status{CreatedAt: created}

	assert.True(t, IsLive(st, created.Add(23*time.Hour+59*time.Minute)))
	assert.False(t, IsLive(st, created.Add(24*time.Hour+time.Second)))
	// Boundary: expiry is strict, a record is dead at exactly its expiry.
	assert.False(t, IsLive(st, created.Add(24*time.Hour)))
}

func TestIsLive_ShortExplicitExpiry(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	st := &domain.Status{CreatedAt: created, ExpiresAt: ts(created.Add(time.Hour))}

	assert.True(t, IsLive(st, created.Add(30*time.Minute)))
	// Dead after the explicit hour even though created_at+24h is far away.
	assert.False(t, IsLive(st, created.Add(2*time.Hour)))
}

func TestIsLive_FailClosed(t *testing.T) {
	st := &domain.Status{}
	assert.False(t, IsLive(st, time.Now()), "malformed records are expired, never permanently live")
}

func TestIsLive_Monotonic(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	st := &domain.Status{CreatedAt: created}

	// If a record is live at t1, it was live at every earlier instant.
	t1 := created.Add(20 * time.Hour)
	assert.True(t, IsLive(st, t1))
	for _, earlier := range []time.Duration{0, time.Minute, 10 * time.Hour, 19 * time.Hour} {
		assert.True(t, IsLive(st, created.Add(earlier)), "liveness may only transition live to expired")
	}
}
