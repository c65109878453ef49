package model

import "time"

// OnlineUser is a TTL-expiring presence row, refreshed by heartbeats.
// Rows whose last heartbeat is older than the configured TTL are treated
// as offline and eventually cleaned up.
type OnlineUser struct {
	UserID        uint      `gorm:"primaryKey" json:"user_id"`
	Username      string    `gorm:"type:varchar(50);not null" json:"username"`
	LastHeartbeat time.Time `gorm:"not null;index" json:"last_heartbeat"`
	CurrentAction *string   `gorm:"type:varchar(255)" json:"current_action,omitempty"`
}

func (OnlineUser) TableName() string {
	return "online_users"
}
