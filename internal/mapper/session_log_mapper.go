package mapper

import (
	"encoding/json"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type SessionLogMapper struct{}

func NewSessionLogMapper() *SessionLogMapper {
	return &SessionLogMapper{}
}

func (m *SessionLogMapper) ToMessages(e *model.SessionLog) ([]entity.ChatMessage, error) {
	if e == nil || len(e.Messages) == 0 {
		return []entity.ChatMessage{}, nil
	}

	var messages []entity.ChatMessage
	if err := json.Unmarshal(e.Messages, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (m *SessionLogMapper) ToModel(key string, messages []entity.ChatMessage) (*model.SessionLog, error) {
	if messages == nil {
		messages = []entity.ChatMessage{}
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}

	return &model.SessionLog{
		SessionKey: key,
		Messages:   datatypes.JSON(data),
	}, nil
}
