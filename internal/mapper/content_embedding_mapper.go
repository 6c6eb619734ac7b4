package mapper

import (
	"encoding/json"
	"time"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ContentEmbeddingMapper struct{}

func NewContentEmbeddingMapper() *ContentEmbeddingMapper {
	return &ContentEmbeddingMapper{}
}

func (m *ContentEmbeddingMapper) ToEntity(e *model.ContentEmbedding) *entity.ContentEmbedding {
	if e == nil {
		return nil
	}

	metadata := make(map[string]interface{})
	if len(e.Metadata) > 0 {
		// Corrupt metadata degrades to an empty map rather than failing the search.
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ContentEmbedding{
		Id:        e.Id,
		Category:  entity.ContentCategory(e.Category),
		Document:  e.Document,
		Vector:    e.EmbeddingValue.Slice(),
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ContentEmbeddingMapper) ToModel(e *entity.ContentEmbedding) (*model.ContentEmbedding, error) {
	if e == nil {
		return nil, nil
	}

	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.ContentEmbedding{
		Id:             e.Id,
		Category:       string(e.Category),
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.Vector),
		Metadata:       datatypes.JSON(metadata),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}, nil
}
