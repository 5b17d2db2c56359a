package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. Credential handling and token issuance live
// in the external identity provider; this row only carries profile data.
type User struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Username  string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	FirstName string    `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName  string    `json:"last_name" db:"last_name" gorm:"type:text;not null"`

	Recipes []Recipe `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
