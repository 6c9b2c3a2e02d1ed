package types

// SignInRequest 身份提供方换取本地会话
// user_id/email 来自上游 OAuth 回调，ref_code 为注册时携带的邀请码（可选）
type SignInRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	RefCode string `json:"ref_code"`
}

type SignInResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	IsNew   bool   `json:"is_new"`
	Credits int64  `json:"credits"`
}

type UpdateUserRequest struct {
	Name string `json:"name" binding:"required"`
}

type UserProfile struct {
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
}
