package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Email uniqueness is enforced by the unique index.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Age          int       `gorm:"not null;default:0;check:chk_users_age,age >= 0"`
	Avatar       []byte    `gorm:"type:bytea"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Tasks    []TaskModel         `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Sessions []SessionTokenModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
