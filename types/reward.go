package types

type RewardBalanceResp struct {
	Balance int64  `json:"balance"`
	UserID  string `json:"user_id"`
}

// RewardRecord 一条返现流水
type RewardRecord struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"` // 2006-01-02 15:04:05
}

type RewardHistoryResp struct {
	Transactions []RewardRecord `json:"transactions"`
}
