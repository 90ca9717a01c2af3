package notification

type NotificationResponse struct {
	ID        string  `json:"id"`
	Type      Type    `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Link      *string `json:"link,omitempty"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
