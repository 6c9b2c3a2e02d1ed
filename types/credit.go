package types

type CreditsResp struct {
	Credits int64  `json:"credits"`
	UserID  string `json:"user_id"`
}
