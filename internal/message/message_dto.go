package message

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID           string `json:"id"`
	SenderID     string `json:"sender_id"`
	SenderName   string `json:"sender_name"`
	ReceiverID   string `json:"receiver_id"`
	ReceiverName string `json:"receiver_name"`
	Content      string `json:"content"`
	Read         bool   `json:"read"`
	CreatedAt    string `json:"created_at"`
}

type UnreadResponse struct {
	Unread int64 `json:"unread"`
}
