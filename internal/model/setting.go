package model

import "time"

// UserSetting holds per-user preferences. A row is created with defaults the
// first time the user asks for it.
type UserSetting struct {
	BaseModel
	UserID             uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	DarkMode           bool       `gorm:"not null;default:false" json:"dark_mode"`
	AutoBackupEnabled  bool       `gorm:"not null;default:false" json:"auto_backup_enabled"`
	AutoBackupInterval int        `gorm:"not null;default:15" json:"auto_backup_interval"`
	AutoBackupMaxCount int        `gorm:"not null;default:20" json:"auto_backup_max_count"`
	LastBackupTime     *time.Time `json:"last_backup_time,omitempty"`
	ShowOnlineUsers    bool       `gorm:"not null;default:true" json:"show_online_users"`
}
