package entity

import "time"

type ContentEmbedding struct {
	Id        string
	Category  ContentCategory
	Document  string
	Vector    []float32
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// SearchMatch is a single nearest-neighbour hit. Metadata carries the category,
// the indexed text and every metadata key of the ingested record.
type SearchMatch struct {
	Id       string
	Score    float64
	Metadata map[string]interface{}
}
