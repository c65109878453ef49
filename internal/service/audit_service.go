package service

import (
	"encoding/json"
	"log"

	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
)

// AuditLogger is a best-effort side channel. A failed audit write is logged
// and swallowed; it never aborts or delays the business operation it trails.
type AuditLogger interface {
	LogCreate(userID uint, username, entityType string, entityID uint, entityName string, newData interface{})
	LogUpdate(userID uint, username, entityType string, entityID uint, entityName string, oldData, newData interface{})
	LogDelete(userID uint, username, entityType string, entityID uint, entityName string, oldData interface{})
}

type auditLogger struct {
	repo repository.AuditRepository
}

func NewAuditLogger(repo repository.AuditRepository) AuditLogger {
	return &auditLogger{repo: repo}
}

func (a *auditLogger) LogCreate(userID uint, username, entityType string, entityID uint, entityName string, newData interface{}) {
	a.record(userID, username, model.AuditCreate, entityType, entityID, entityName, nil, newData)
}

func (a *auditLogger) LogUpdate(userID uint, username, entityType string, entityID uint, entityName string, oldData, newData interface{}) {
	a.record(userID, username, model.AuditUpdate, entityType, entityID, entityName, oldData, newData)
}

func (a *auditLogger) LogDelete(userID uint, username, entityType string, entityID uint, entityName string, oldData interface{}) {
	a.record(userID, username, model.AuditDelete, entityType, entityID, entityName, oldData, nil)
}

func (a *auditLogger) record(userID uint, username string, action model.AuditAction, entityType string, entityID uint, entityName string, oldData, newData interface{}) {
	entry := &model.AuditLog{
		UserID:     userID,
		Username:   username,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		OldData:    marshalSnapshot(oldData),
		NewData:    marshalSnapshot(newData),
	}
	go func() {
		if err := a.repo.Create(entry); err != nil {
			log.Printf("audit: failed to record %s %s/%d: %v", action, entityType, entityID, err)
		}
	}()
}

func marshalSnapshot(data interface{}) *string {
	if data == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("audit: failed to marshal snapshot: %v", err)
		return nil
	}
	s := string(b)
	return &s
}
