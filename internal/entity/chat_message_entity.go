package entity

// ChatMessage is one entry of a session log. Timestamp is epoch milliseconds and
// is assigned by the session store when the message is appended.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}
