package types

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	ChatID  string `json:"chat_id"`
}

type ChatResponse struct {
	ChatID      string   `json:"chat_id"`
	Reply       string   `json:"reply"`
	Suggestions []string `json:"suggestions,omitempty"`
	UsedTokens  int64    `json:"used_tokens"`
	Credits     int64    `json:"credits"` // 扣减后的余额
}

type ChatItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type MessageItem struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type UploadResp struct {
	Url string `json:"url"`
}
