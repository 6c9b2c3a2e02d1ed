package types

type CreateTopupRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

type CreateTopupResp struct {
	TransactionID string `json:"transaction_id"`
	BillID        string `json:"bill_id"`
	BillLink      string `json:"bill_link"`
	Amount        int64  `json:"amount"`
	Credits       int64  `json:"credits"`
}

// TopupRecord 充值历史里的一条
type TopupRecord struct {
	ID        string  `json:"id"`
	Amount    int64   `json:"amount"`
	Credits   int64   `json:"credits"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
	PaidAt    *string `json:"paid_at"`
}

type TopupHistoryResp struct {
	Transactions []TopupRecord `json:"transactions"`
}

// CallbackResult 回调处理结果
type CallbackResult struct {
	Status string `json:"status"`
}
