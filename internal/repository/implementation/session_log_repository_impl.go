package implementation

import (
	"context"
	"errors"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/mapper"
	"portfolio-chatbot-be/internal/model"
	"portfolio-chatbot-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionLogMapper
}

func NewSessionLogRepository(db *gorm.DB) contract.SessionLogRepository {
	return &SessionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionLogMapper(),
	}
}

func (r *SessionLogRepositoryImpl) Get(ctx context.Context, key string) ([]entity.ChatMessage, bool, error) {
	var m model.SessionLog
	err := r.db.WithContext(ctx).Where("session_key = ?", key).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	messages, err := r.mapper.ToMessages(&m)
	if err != nil {
		return nil, false, err
	}
	return messages, true, nil
}

func (r *SessionLogRepositoryImpl) Put(ctx context.Context, key string, messages []entity.ChatMessage) error {
	m, err := r.mapper.ToModel(key, messages)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"messages", "updated_at"}),
		}).
		Create(m).Error
}
