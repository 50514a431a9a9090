package httpdto

type NewChatMessageRequest struct {
	Sender   string `json:"sender" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ThreadID string `json:"thread_id"`
}

type ArchiveResponse struct {
	Key string `json:"key"`
}
