package model

import (
	"time"

	"gorm.io/datatypes"
)

// SessionLog stores the complete message log of one chat session as a single
// JSON document so that every write replaces the log atomically.
type SessionLog struct {
	SessionKey string         `gorm:"type:text;primaryKey"`
	Messages   datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (SessionLog) TableName() string {
	return "session_logs"
}
