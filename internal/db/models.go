package db

import (
	"time"
)

// Role values stored on User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Gender lookup table. Users and preferences reference genders by id.
type Gender struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;size:32;not null"`
}

// User table. Latitude/Longitude are nullable: a user without a location
// cannot request or appear in discovery.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	PhoneNumber  string `gorm:"size:32"`
	Bio          string `gorm:"type:text"`
	DateOfBirth  time.Time
	GenderID     uint64 `gorm:"index;not null"`
	Gender       Gender
	Latitude     *float64
	Longitude    *float64
	Active       bool      `gorm:"default:true"`
	Verified     bool      `gorm:"default:false"`
	Role         string    `gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Preference holds per-user discovery bounds. Created lazily on first
// write; repository defaults apply while no row exists.
type Preference struct {
	UserID        uint64 `gorm:"primaryKey"`
	MaxDistanceKm int    `gorm:"not null;default:50"`
	MinAge        int    `gorm:"not null;default:18"`
	MaxAge        int    `gorm:"not null;default:99"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PreferredGender is the m2m edge between a user's preference and the
// genders they want to see. An empty set means "no gender filter".
type PreferredGender struct {
	UserID   uint64 `gorm:"primaryKey"`
	GenderID uint64 `gorm:"primaryKey"`
}

// Swipe represents a directed like/pass decision, swiper -> swiped.
//
// Composite PK: (SwiperID, SwipedID)
//   - Ensures a single row per ordered pair; a repeated decision
//     overwrites the previous one instead of stacking rows.
//
// Index idx_swiped_liked(swiped_id, liked) makes the reciprocal-like
// lookup during match detection an index hit.
type Swipe struct {
	SwiperID  uint64    `gorm:"primaryKey"`
	SwipedID  uint64    `gorm:"primaryKey;index:idx_swiped_liked,priority:1"`
	Liked     bool      `gorm:"not null;index:idx_swiped_liked,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Match is the undirected mutual-like pair, stored canonically with
// User1ID < User2ID. The composite unique index is the backstop that
// keeps concurrent reciprocal-like detections from producing two rows
// for the same pair.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	User1ID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:1"`
	User2ID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Conversation is 1:1 with Match, created in the same transaction as
// the match row.
type Conversation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	MatchID   uint64    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Message is append-only chat content inside a conversation.
type Message struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	ConversationID uint64    `gorm:"index;not null"`
	SenderID       uint64    `gorm:"not null"`
	Content        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

// BlockRelation is a directed block, blocker -> blocked. A block in
// either direction suppresses the pair everywhere: discovery, swiping,
// messaging.
type BlockRelation struct {
	BlockerID uint64    `gorm:"primaryKey"`
	BlockedID uint64    `gorm:"primaryKey"`
	Reason    string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Picture is upload bookkeeping for a user's photos. At most one row
// per user has IsProfile set.
type Picture struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"index;not null"`
	FilePath  string    `gorm:"size:255;not null"`
	IsProfile bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Report statuses walked by admin moderation.
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

// Report is a user-filed complaint reviewed by admins.
type Report struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	ReporterID uint64    `gorm:"index;not null"`
	ReportedID uint64    `gorm:"index;not null"`
	Reason     string    `gorm:"size:255;not null"`
	Status     string    `gorm:"size:16;not null;default:open"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
