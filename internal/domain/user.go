package domain

import "time"

type StatusAudience string

const (
	// AudienceEveryone makes the user's statuses visible to the whole family.
	AudienceEveryone StatusAudience = "everyone"
	// AudienceNobody hides the user's statuses from everyone but themselves.
	AudienceNobody StatusAudience = "nobody"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	About        string    `json:"about,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	IsBot        bool      `json:"is_bot" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Privacy settings, flattened into the users table.
	StatusAudience StatusAudience `json:"status_audience" gorm:"default:everyone"`
	ReadReceipts   bool           `json:"read_receipts" gorm:"default:true"`
	ShowLastSeen   bool           `json:"show_last_seen" gorm:"default:true"`

	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SharesStatusesWith reports whether viewer may see this user's statuses.
// Owners always see their own.
func (u *User) SharesStatusesWith(viewerID int64) bool {
	if u.ID == viewerID {
		return true
	}
	return u.StatusAudience != AudienceNobody
}
