package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/joshuahale/portfolio-backend/internal/domain/user"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/mappers"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/persistence/models"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(db *gorm.DB) user.SessionRepository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(session *user.Session) error {
	model := r.mapper.ToModel(session)
	if err := r.db.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("session token already exists")
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	session.ID = model.ID
	return nil
}

func (r *SessionRepository) GetByToken(token string) (*user.Session, error) {
	var model models.SessionModel
	err := r.db.Where("token = ?", token).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) ExistsByToken(token string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SessionModel{}).Where("token = ?", token).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check session token existence: %w", err)
	}
	return count > 0, nil
}

func (r *SessionRepository) DeleteByToken(token string) (bool, error) {
	result := r.db.Where("token = ?", token).Delete(&models.SessionModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *SessionRepository) DeleteByUserID(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete sessions by user ID: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *SessionRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", cutoff).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
