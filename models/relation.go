package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationKind selects which toggle relation a UserRelation row represents.
type RelationKind string

const (
	RelationFavorite  RelationKind = "favorite"
	RelationCart      RelationKind = "cart"
	RelationSubscribe RelationKind = "subscribe"
)

// Valid reports whether k is one of the known relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case RelationFavorite, RelationCart, RelationSubscribe:
		return true
	}
	return false
}

// UserRelation is a single generic (actor, target) toggle row covering
// favorites, cart membership and subscriptions. TargetID references a recipe
// for favorite/cart and a user for subscribe. The (user, target, kind) triple
// is unique, which is what keeps a concurrent double-add from creating
// duplicate rows.
type UserRelation struct {
	ID        uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID    uuid.UUID    `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_target_kind"`
	TargetID  uuid.UUID    `json:"target_id" db:"target_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_user_target_kind"`
	Kind      RelationKind `json:"kind" db:"kind" gorm:"type:text;not null;uniqueIndex:idx_user_target_kind"`
	CreatedAt time.Time    `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ur *UserRelation) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == uuid.Nil {
		ur.ID = uuid.New()
	}
	return nil
}
