package repository

import (
	"errors"

	"go-bizbook/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	FindOrCreate(userID uint) (*model.UserSetting, error)
	UpdateFields(userID uint, fields map[string]interface{}) (*model.UserSetting, error)
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

// FindOrCreate returns the user's settings, creating a defaults row on the
// first request.
func (r *settingRepo) FindOrCreate(userID uint) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := r.db.Where("user_id = ?", userID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = model.UserSetting{
			UserID:             userID,
			AutoBackupInterval: 15,
			AutoBackupMaxCount: 20,
			ShowOnlineUsers:    true,
		}
		if err := r.db.Create(&setting).Error; err != nil {
			return nil, err
		}
		return &setting, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) UpdateFields(userID uint, fields map[string]interface{}) (*model.UserSetting, error) {
	setting, err := r.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(setting).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindOrCreate(userID)
}
