package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionTokenModel mirrors the 'session_tokens' table. Only token digests are stored.
type SessionTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionTokenModel) TableName() string {
	return "session_tokens"
}

// All lists every model in migration order.
func All() []any {
	return []any{&UserModel{}, &TaskModel{}, &SessionTokenModel{}}
}
