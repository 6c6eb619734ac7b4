package dto

type ContentRecordDTO struct {
	Id       string                 `json:"id" validate:"required"`
	Category string                 `json:"category" validate:"required,oneof=personal education work project skill"`
	Text     string                 `json:"text" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type IngestResponse struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type AsyncIngestResponse struct {
	Queued int `json:"queued"`
}

// PublishIngestContentMessage is the payload carried on the ingest topic.
type PublishIngestContentMessage struct {
	BatchId string             `json:"batch_id"`
	Records []ContentRecordDTO `json:"records"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
