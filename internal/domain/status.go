package domain

import "time"

// StatusTTL is the default lifetime of a status post. A status created at T
// with no explicit expiry disappears at T + StatusTTL.
const StatusTTL = 24 * time.Hour

// MediaKind discriminates external media resources for the CDN's resource
// pooling. It travels with the external ID on every delete call.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaRef points at a binary object stored on the media CDN. The backend
// never uploads through this reference; it only deletes by it.
type MediaRef struct {
	ExternalID string    `json:"external_id"`
	Kind       MediaKind `json:"kind"`
}

// Status is one ephemeral post, visible to the family for a bounded window.
//
// expires_at is nullable: rows written before the TTL scheme existed have
// NULL here until the backfill sets it. Every reader treats a missing value
// as created_at + StatusTTL; there is no stored "expired" flag, expiry is
// evaluated at read time and enforced physically by the sweep.
type Status struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	OwnerID int64  `json:"owner_id" gorm:"not null;index"`

	// Media columns are both NULL for text-only statuses.
	MediaExternalID *string    `json:"-" gorm:"index"`
	MediaKind       *MediaKind `json:"-"`

	Caption   string     `json:"caption,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" gorm:"index"`

	// Filled by the service, not stored.
	Owner     *User            `json:"owner,omitempty" gorm:"-"`
	ViewedBy  []int64          `json:"viewed_by,omitempty" gorm:"-"`
	Reactions map[int64]string `json:"reactions,omitempty" gorm:"-"`
}

func (Status) TableName() string {
	return "statuses"
}

// Media returns the external media reference, or nil for text-only statuses.
func (s *Status) Media() *MediaRef {
	if s.MediaExternalID == nil || *s.MediaExternalID == "" {
		return nil
	}
	kind := MediaKindImage
	if s.MediaKind != nil {
		kind = *s.MediaKind
	}
	return &MediaRef{ExternalID: *s.MediaExternalID, Kind: kind}
}

// StatusView records that a viewer opened a status. Append-only.
type StatusView struct {
	ID       int64     `json:"id" gorm:"primaryKey"`
	StatusID string    `json:"status_id" gorm:"not null;uniqueIndex:idx_status_viewer;size:36"`
	ViewerID int64     `json:"viewer_id" gorm:"not null;uniqueIndex:idx_status_viewer"`
	ViewedAt time.Time `json:"viewed_at"`
}

func (StatusView) TableName() string {
	return "status_views"
}

// StatusReaction holds at most one emoji per viewer per status.
// Re-reacting overwrites the previous emoji (last write wins).
type StatusReaction struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	StatusID  string    `json:"status_id" gorm:"not null;uniqueIndex:idx_status_reactor;size:36"`
	ViewerID  int64     `json:"viewer_id" gorm:"not null;uniqueIndex:idx_status_reactor"`
	Emoji     string    `json:"emoji" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StatusReaction) TableName() string {
	return "status_reactions"
}
