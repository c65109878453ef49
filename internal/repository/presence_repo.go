package repository

import (
	"time"

	"go-bizbook/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PresenceRepository interface {
	Heartbeat(userID uint, username string, action *string) error
	FindByUserID(userID uint) (*model.OnlineUser, error)
	ListOnline(ttl time.Duration) ([]model.OnlineUser, error)
	CountOnline(ttl time.Duration) (int64, error)
	SetAction(userID uint, username, action string) error
	ClearAction(userID uint) error
	Remove(userID uint) error
	CleanupExpired(ttl time.Duration) (int64, error)
}

type presenceRepo struct {
	db *gorm.DB
}

func NewPresenceRepo(db *gorm.DB) PresenceRepository {
	return &presenceRepo{db}
}

// Heartbeat upserts the user's presence row and refreshes its timestamp.
func (r *presenceRepo) Heartbeat(userID uint, username string, action *string) error {
	row := model.OnlineUser{
		UserID:        userID,
		Username:      username,
		LastHeartbeat: time.Now(),
		CurrentAction: action,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "last_heartbeat", "current_action"}),
	}).Create(&row).Error
}

func (r *presenceRepo) FindByUserID(userID uint) (*model.OnlineUser, error) {
	var row model.OnlineUser
	if err := r.db.First(&row, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *presenceRepo) ListOnline(ttl time.Duration) ([]model.OnlineUser, error) {
	var rows []model.OnlineUser
	err := r.db.Where("last_heartbeat > ?", time.Now().Add(-ttl)).
		Order("last_heartbeat DESC").
		Find(&rows).Error
	return rows, err
}

func (r *presenceRepo) CountOnline(ttl time.Duration) (int64, error) {
	var count int64
	err := r.db.Model(&model.OnlineUser{}).
		Where("last_heartbeat > ?", time.Now().Add(-ttl)).
		Count(&count).Error
	return count, err
}

// SetAction updates the user's current action, inserting the presence row if
// the user had no heartbeat yet.
func (r *presenceRepo) SetAction(userID uint, username, action string) error {
	return r.Heartbeat(userID, username, &action)
}

func (r *presenceRepo) ClearAction(userID uint) error {
	return r.db.Model(&model.OnlineUser{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_action": nil,
			"last_heartbeat": time.Now(),
		}).Error
}

func (r *presenceRepo) Remove(userID uint) error {
	return r.db.Delete(&model.OnlineUser{}, "user_id = ?", userID).Error
}

func (r *presenceRepo) CleanupExpired(ttl time.Duration) (int64, error) {
	res := r.db.Where("last_heartbeat <= ?", time.Now().Add(-ttl)).
		Delete(&model.OnlineUser{})
	return res.RowsAffected, res.Error
}
