package dto

type SendChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"sessionId,omitempty"`
}

type SendChatResponse struct {
	Response  string `json:"response"`
	SessionId string `json:"sessionId"`
}

type ClearSessionRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
}

type ClearSessionResponse struct {
	Success bool `json:"success"`
}

type ChatMessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type GetChatHistoryResponse struct {
	SessionId string           `json:"sessionId"`
	Messages  []ChatMessageDTO `json:"messages"`
}
