package flip

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"naikkelas/config"
	"naikkelas/pkg/log"

	"go.uber.org/zap"
)

// BillRequest 创建账单参数，对应 Flip PWF /pwf/bill 表单
type BillRequest struct {
	Title       string
	Amount      int64
	Type        string // SINGLE / MULTIPLE
	ExpiredDate string // 2006-01-02 15:04
	RedirectURL string
	SenderName  string
	SenderEmail string
	Step        int
}

type BillResponse struct {
	LinkID      int64  `json:"link_id"`
	LinkURL     string `json:"link_url"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	RedirectURL string `json:"redirect_url"`
	ExpiredDate string `json:"expired_date"`
	Status      string `json:"status"`
}

// CallbackData 回调 data 字段里的 JSON
type CallbackData struct {
	ID         string `json:"id"`
	BillLink   string `json:"bill_link"`
	BillLinkID int64  `json:"bill_link_id"`
	BillTitle  string `json:"bill_title"`
	SenderName string `json:"sender_name"`
	SenderBank string `json:"sender_bank"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
}

type Client struct {
	cfg  *config.FlipConfig
	http *http.Client
}

func NewClient(cfg *config.FlipConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Flip 用 Basic Auth，secret key 做用户名，密码为空
func (c *Client) authHeader() string {
	credentials := c.cfg.SecretKey + ":"
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// CreateBill 创建支付账单，单次尝试不重试
func (c *Client) CreateBill(ctx context.Context, req *BillRequest) (*BillResponse, error) {
	form := url.Values{}
	form.Set("title", req.Title)
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("type", req.Type)
	form.Set("expired_date", req.ExpiredDate)
	form.Set("redirect_url", req.RedirectURL)
	form.Set("sender_name", req.SenderName)
	form.Set("sender_email", req.SenderEmail)
	form.Set("step", strconv.Itoa(req.Step))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.ApiURL+"/pwf/bill", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", c.authHeader())
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("flip create bill: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.L.Error("flip create bill failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("flip create bill: status %d", resp.StatusCode)
	}

	var bill BillResponse
	if err := json.Unmarshal(body, &bill); err != nil {
		return nil, fmt.Errorf("flip create bill decode: %w", err)
	}

	// Flip 返回的 link_url 不带协议前缀
	if bill.LinkURL != "" && !strings.HasPrefix(bill.LinkURL, "http") {
		bill.LinkURL = "https://" + bill.LinkURL
	}

	log.L.Info("flip bill created",
		zap.Int64("link_id", bill.LinkID),
		zap.String("link_url", bill.LinkURL))
	return &bill, nil
}

// ValidateCallbackToken 回调 token 精确匹配，常量时间比较
func (c *Client) ValidateCallbackToken(token string) bool {
	expected := c.cfg.ValidationToken
	if expected == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
}

// ParseCallbackData 严格解析回调数据，缺关键字段按非法处理
func ParseCallbackData(data string) (*CallbackData, error) {
	var cb CallbackData
	if err := json.Unmarshal([]byte(data), &cb); err != nil {
		return nil, fmt.Errorf("flip callback decode: %w", err)
	}
	if cb.BillLinkID <= 0 {
		return nil, fmt.Errorf("flip callback: missing bill_link_id")
	}
	if cb.Status == "" {
		return nil, fmt.Errorf("flip callback: missing status")
	}
	return &cb, nil
}

// FormatExpiredDate 账单过期时间，格式 YYYY-MM-DD HH:mm
func FormatExpiredDate(hoursFromNow int) string {
	return time.Now().Add(time.Duration(hoursFromNow) * time.Hour).Format("2006-01-02 15:04")
}
