package entities

import "time"

// LogEntry is an audit trail row: who did what to which target.
// UserID is nil for actions performed without an authenticated identity.
type LogEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:100" json:"action"`
	Target    string    `gorm:"size:100" json:"target"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (LogEntry) TableName() string {
	return "logs"
}
