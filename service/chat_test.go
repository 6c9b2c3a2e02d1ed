package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"naikkelas/config"
	"naikkelas/dao"
	"naikkelas/models"
	"naikkelas/pkg/llm"
	"naikkelas/types"

	"gorm.io/gorm"
)

// newFakeLLM 起一个 openai 兼容的假服务
func newFakeLLM(t *testing.T, reply string, totalTokens int64) (*llm.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": reply,
					},
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     20,
				"completion_tokens": totalTokens - 20,
				"total_tokens":      totalTokens,
			},
		})
	}))
	t.Cleanup(srv.Close)
	return llm.NewClient(&config.LLMConfig{ApiKey: "test", BaseURL: srv.URL, Model: "test-model"}), srv
}

func newChatService(db *gorm.DB, client *llm.Client) *ChatService {
	return &ChatService{
		DB:            db,
		ChatDAO:       dao.NewChat(db),
		MessageDAO:    dao.NewMessage(db),
		CreditService: newCreditService(db),
		LLM:           client,
	}
}

func TestSendMessage_NewChat(t *testing.T) {
	db := newTestDB(t)
	client, _ := newFakeLLM(t, "Halo, ini jawabannya.\n|||{\"suggestions\":[\"A\",\"B\",\"C\"]}|||", 120)
	s := newChatService(db, client)
	credit := newCreditService(db)
	ctx := context.Background()

	if _, err := credit.GetOrCreateBalance(ctx, "u1"); err != nil {
		t.Fatalf("setup credits: %v", err)
	}

	resp, err := s.SendMessage(ctx, "u1", &types.ChatRequest{Message: "Apa itu fotosintesis?"})
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if resp.ChatID == "" {
		t.Fatal("expected chat id")
	}
	if resp.Reply != "Halo, ini jawabannya." {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if len(resp.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %v", resp.Suggestions)
	}
	if resp.UsedTokens != 120 {
		t.Fatalf("expected 120 used tokens, got %d", resp.UsedTokens)
	}
	if resp.Credits != DefaultTrialCredits-120 {
		t.Fatalf("expected remaining %d, got %d", DefaultTrialCredits-120, resp.Credits)
	}

	// 按实际用量扣减落库
	if b, _ := credit.GetOrCreateBalance(ctx, "u1"); b != DefaultTrialCredits-120 {
		t.Fatalf("expected db balance %d, got %d", DefaultTrialCredits-120, b)
	}

	msgs, err := s.ListMessages(ctx, "u1", resp.ChatID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected user + ai message, got %d", len(msgs))
	}
	if msgs[0].Role != models.MessageRoleUser || msgs[1].Role != models.MessageRoleAI {
		t.Fatalf("unexpected roles: %s %s", msgs[0].Role, msgs[1].Role)
	}

	chats, err := s.ListChats(ctx, "u1")
	if err != nil {
		t.Fatalf("list chats: %v", err)
	}
	if len(chats) != 1 || chats[0].Title != "Apa itu fotosintesis?" {
		t.Fatalf("unexpected chats: %+v", chats)
	}
}

func TestSendMessage_ContinuesChat(t *testing.T) {
	db := newTestDB(t)
	client, _ := newFakeLLM(t, "Jawaban kedua.", 80)
	s := newChatService(db, client)
	credit := newCreditService(db)
	ctx := context.Background()

	credit.GetOrCreateBalance(ctx, "u1")

	first, err := s.SendMessage(ctx, "u1", &types.ChatRequest{Message: "pertama"})
	if err != nil {
		t.Fatalf("first message: %v", err)
	}
	second, err := s.SendMessage(ctx, "u1", &types.ChatRequest{Message: "kedua", ChatID: first.ChatID})
	if err != nil {
		t.Fatalf("second message: %v", err)
	}
	if second.ChatID != first.ChatID {
		t.Fatalf("expected same chat, got %s != %s", second.ChatID, first.ChatID)
	}

	msgs, _ := s.ListMessages(ctx, "u1", first.ChatID)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
}

// 低于门槛直接拒绝，不碰生成也不扣积分
func TestSendMessage_InsufficientCredits(t *testing.T) {
	db := newTestDB(t)
	client, srv := newFakeLLM(t, "should not be called", 10)
	srv.Close() // 真被调用就会报错
	s := newChatService(db, client)
	credit := newCreditService(db)
	ctx := context.Background()

	credit.GetOrCreateBalance(ctx, "u1")
	if err := credit.Debit(ctx, "u1", DefaultTrialCredits-500); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := s.SendMessage(ctx, "u1", &types.ChatRequest{Message: "halo"})
	if err == nil {
		t.Fatal("expected rejection below threshold")
	}
	if code := bizCode(t, err); code != 403 {
		t.Fatalf("expected 403, got %d", code)
	}

	// 没有会话被创建，余额原样
	var count int64
	db.Model(&models.Chat{}).Where("user_id = ?", "u1").Count(&count)
	if count != 0 {
		t.Fatalf("expected no chat created, got %d", count)
	}
	if b, _ := credit.GetOrCreateBalance(ctx, "u1"); b != 500 {
		t.Fatalf("balance must be untouched, got %d", b)
	}
}

func TestSendMessage_ChatNotFound(t *testing.T) {
	db := newTestDB(t)
	client, _ := newFakeLLM(t, "x", 10)
	s := newChatService(db, client)
	ctx := context.Background()

	newCreditService(db).GetOrCreateBalance(ctx, "u1")

	_, err := s.SendMessage(ctx, "u1", &types.ChatRequest{Message: "halo", ChatID: "chat_missing"})
	if err == nil {
		t.Fatal("expected error for missing chat")
	}
	if code := bizCode(t, err); code != 404 {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestListMessages_RequiresChatID(t *testing.T) {
	db := newTestDB(t)
	client, _ := newFakeLLM(t, "x", 10)
	s := newChatService(db, client)

	_, err := s.ListMessages(context.Background(), "u1", "")
	if err == nil {
		t.Fatal("expected error for empty chat_id")
	}
	if code := bizCode(t, err); code != 400 {
		t.Fatalf("expected 400, got %d", code)
	}
}
