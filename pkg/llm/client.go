package llm

import (
	"context"
	"strings"
	"time"

	"naikkelas/config"
	"naikkelas/pkg/log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// 系统提示词：正文 + 结尾以 |||{json}||| 包裹的三条追问建议
const systemInstruction = `You are a helpful, smart, and creative AI assistant.
Answer the user's query thoroughly and politely.
At the end of your response, provide 3 relevant follow-up questions as a bulleted list,
then append the same 3 suggestions as a raw JSON block wrapped in ||| delimiters:
|||{ "suggestions": ["Suggestion 1", "Suggestion 2", "Suggestion 3"] }|||`

// HistoryMessage 会话上下文里的一条消息
type HistoryMessage struct {
	Role    string // user / ai
	Content string
}

// Result 一次生成的结果和实际消耗的 token 数
type Result struct {
	Content     string
	Suggestions []string
	UsedTokens  int64
}

type Client struct {
	cfg    *config.LLMConfig
	client openai.Client
}

func NewClient(cfg *config.LLMConfig) *Client {
	return &Client{
		cfg: cfg,
		client: openai.NewClient(
			option.WithAPIKey(cfg.ApiKey),
			option.WithBaseURL(cfg.BaseURL),
		),
	}
}

// Generate 带历史上下文调用生成模型
func (c *Client) Generate(ctx context.Context, history []HistoryMessage, prompt string) (*Result, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemInstruction))
	for _, h := range history {
		if h.Role == "user" {
			messages = append(messages, openai.UserMessage(h.Content))
		} else {
			messages = append(messages, openai.AssistantMessage(h.Content))
		}
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:    c.cfg.Model,
		Messages: messages,
	}

	startTime := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.L.Error("failed to generate completion", zap.Error(err))
		return nil, err
	}

	content := completion.Choices[0].Message.Content
	usedTokens := completion.Usage.TotalTokens
	log.L.Info("generation done",
		zap.Int64("used_tokens", usedTokens),
		zap.Duration("gen time", time.Since(startTime)))

	text, suggestions := splitSuggestions(content)
	return &Result{
		Content:     text,
		Suggestions: suggestions,
		UsedTokens:  usedTokens,
	}, nil
}

// splitSuggestions 剥掉结尾的 |||{json}||| 建议块
func splitSuggestions(content string) (string, []string) {
	start := strings.Index(content, "|||")
	if start < 0 {
		return content, nil
	}
	end := strings.LastIndex(content, "|||")
	if end <= start {
		return content, nil
	}

	raw := content[start+3 : end]
	var suggestions []string
	for _, s := range gjson.Get(raw, "suggestions").Array() {
		if s.String() != "" {
			suggestions = append(suggestions, s.String())
		}
	}
	return strings.TrimSpace(content[:start]), suggestions
}
