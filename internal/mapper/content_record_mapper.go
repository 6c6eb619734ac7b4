package mapper

import (
	"portfolio-chatbot-be/internal/dto"
	"portfolio-chatbot-be/internal/entity"
)

type ContentRecordMapper struct{}

func NewContentRecordMapper() *ContentRecordMapper {
	return &ContentRecordMapper{}
}

func (m *ContentRecordMapper) ToEntity(d dto.ContentRecordDTO) entity.ContentRecord {
	return entity.ContentRecord{
		Id:       d.Id,
		Category: entity.ContentCategory(d.Category),
		Text:     d.Text,
		Metadata: d.Metadata,
	}
}

func (m *ContentRecordMapper) ToEntities(ds []dto.ContentRecordDTO) []entity.ContentRecord {
	out := make([]entity.ContentRecord, len(ds))
	for i, d := range ds {
		out[i] = m.ToEntity(d)
	}
	return out
}
