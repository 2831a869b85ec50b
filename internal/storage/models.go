package storage

// ChatMessage is one persisted conversation message. Feedback is a
// non-semantic annotation on assistant messages ("up" or "down") and is
// never sent to providers.
type ChatMessage struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Feedback string `json:"feedback,omitempty"`
}
