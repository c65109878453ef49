package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
	"go-bizbook/internal/ws"
	"go-bizbook/pkg/jwt"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string             `json:"token"`
	ExpiresIn int                `json:"expires_in"` // seconds
	User      model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(in *RegisterInput) (*AuthResponse, error)
	Login(in *LoginInput) (*AuthResponse, error)
	Logout(userID uint) error
	Me(userID uint) (*model.UserResponse, error)
	Refresh(userID uint) (*AuthResponse, error)
	ChangePassword(userID uint, oldPassword, newPassword string) error
	Heartbeat(userID uint, username string, action *string) error
}

type authService struct {
	userRepo     repository.UserRepository
	settingRepo  repository.SettingRepository
	presenceRepo repository.PresenceRepository
	hub          *ws.Hub
}

func NewAuthService(userRepo repository.UserRepository, settingRepo repository.SettingRepository, presenceRepo repository.PresenceRepository, hub *ws.Hub) AuthService {
	return &authService{
		userRepo:     userRepo,
		settingRepo:  settingRepo,
		presenceRepo: presenceRepo,
		hub:          hub,
	}
}

func (s *authService) Register(in *RegisterInput) (*AuthResponse, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(in.Username); err == nil {
		return nil, ErrUsernameTaken
	}

	user := &model.User{
		Username:     in.Username,
		TokenVersion: uuid.New().String(),
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Default settings row, created eagerly so the first settings fetch is a
	// plain read.
	if _, err := s.settingRepo.FindOrCreate(user.ID); err != nil {
		return nil, err
	}

	s.markOnline(user.ID, user.Username, "registered")
	return s.issueToken(user)
}

func (s *authService) Login(in *LoginInput) (*AuthResponse, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	if !user.CheckPassword(in.Password) {
		return nil, ErrInvalidCredential
	}

	// Single session: rotating the token version invalidates every token
	// issued before this login.
	user.TokenVersion = uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, user.TokenVersion); err != nil {
		return nil, err
	}

	s.markOnline(user.ID, user.Username, "logged in")
	return s.issueToken(user)
}

func (s *authService) Logout(userID uint) error {
	if err := s.presenceRepo.Remove(userID); err != nil {
		return err
	}
	s.hub.Publish(map[string]interface{}{
		"type":    "user_status_update",
		"user_id": userID,
		"status":  "offline",
	})
	return nil
}

func (s *authService) Me(userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Refresh(userID uint) (*AuthResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.issueToken(user)
}

func (s *authService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(userID, user.Password); err != nil {
		return err
	}
	// Force re-login everywhere.
	return s.userRepo.UpdateTokenVersion(userID, uuid.New().String())
}

func (s *authService) Heartbeat(userID uint, username string, action *string) error {
	if err := s.presenceRepo.Heartbeat(userID, username, action); err != nil {
		return err
	}
	s.hub.Publish(map[string]interface{}{
		"type":         "user_status_update",
		"user_id":      userID,
		"username":     username,
		"status":       "online",
		"last_seen_at": time.Now(),
	})
	return nil
}

func (s *authService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Username, user.TokenVersion)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresIn: int(jwt.TokenTTL.Seconds()),
		User:      user.ToResponse(),
	}, nil
}

func (s *authService) markOnline(userID uint, username, action string) {
	// Presence is best-effort; a failed upsert must not fail the login.
	if err := s.presenceRepo.Heartbeat(userID, username, &action); err == nil {
		s.hub.Publish(map[string]interface{}{
			"type":     "user_status_update",
			"user_id":  userID,
			"username": username,
			"status":   "online",
		})
	}
}
