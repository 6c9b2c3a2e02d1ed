package service

import (
	"context"
	"strings"
	"testing"

	"naikkelas/models"
)

// 同一用户反复取码，拿到的永远是同一个
func TestGetOrCreateCode_Idempotent(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	first, err := s.GetOrCreateCode(ctx, "u1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if !strings.HasPrefix(first, "REF_") {
		t.Fatalf("unexpected code format: %s", first)
	}

	second, err := s.GetOrCreateCode(ctx, "u1")
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if first != second {
		t.Fatalf("code changed between calls: %s != %s", first, second)
	}

	var count int64
	if err := db.Model(&models.ReferralCode{}).Where("user_id = ?", "u1").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 code row, got %d", count)
	}
}

func TestResolve_UnknownCode(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	owner, err := s.Resolve(ctx, "REF_UNKNOWN1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner != "" {
		t.Fatalf("expected empty owner for unknown code, got %s", owner)
	}

	owner, err = s.Resolve(ctx, "")
	if err != nil || owner != "" {
		t.Fatalf("expected empty result for empty code, got %q %v", owner, err)
	}
}

// 一级归因：邀请人得 75000，新用户自己不得奖励
func TestAttribute_SingleLevel(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	code, err := s.GetOrCreateCode(ctx, "u1")
	if err != nil {
		t.Fatalf("create code: %v", err)
	}

	referral, err := s.Attribute(ctx, "u2", code)
	if err != nil {
		t.Fatalf("attribute: %v", err)
	}
	if referral == nil {
		t.Fatal("expected referral to be created")
	}
	if referral.ReferrerLevel1ID != "u1" || referral.ReferredUserID != "u2" {
		t.Fatalf("unexpected referral: %+v", referral)
	}
	if referral.ReferrerLevel2ID != nil {
		t.Fatalf("expected no level2 referrer, got %v", *referral.ReferrerLevel2ID)
	}

	reward := newRewardService(db)
	balance, err := reward.GetBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance != RewardLevel1 {
		t.Fatalf("expected level1 reward %d, got %d", RewardLevel1, balance)
	}

	if b, _ := reward.GetBalance(ctx, "u2"); b != 0 {
		t.Fatalf("referred user must not earn, got %d", b)
	}
}

// 两级链：u1 邀请 u2，u2 邀请 u3
// u3 注册时 u2 得 75000，u1 再得 25000，同一事件两笔流水
func TestAttribute_TwoLevel(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	codeU1, _ := s.GetOrCreateCode(ctx, "u1")
	if _, err := s.Attribute(ctx, "u2", codeU1); err != nil {
		t.Fatalf("attribute u2: %v", err)
	}

	codeU2, _ := s.GetOrCreateCode(ctx, "u2")
	referral, err := s.Attribute(ctx, "u3", codeU2)
	if err != nil {
		t.Fatalf("attribute u3: %v", err)
	}
	if referral == nil {
		t.Fatal("expected referral for u3")
	}
	if referral.ReferrerLevel1ID != "u2" {
		t.Fatalf("expected level1 u2, got %s", referral.ReferrerLevel1ID)
	}
	if referral.ReferrerLevel2ID == nil || *referral.ReferrerLevel2ID != "u1" {
		t.Fatalf("expected level2 u1, got %v", referral.ReferrerLevel2ID)
	}

	reward := newRewardService(db)
	if b, _ := reward.GetBalance(ctx, "u2"); b != RewardLevel1 {
		t.Fatalf("expected u2 balance %d, got %d", RewardLevel1, b)
	}
	// u1 在 u2 注册时已得 75000，u3 注册再补 25000
	if b, _ := reward.GetBalance(ctx, "u1"); b != RewardLevel1+RewardLevel2 {
		t.Fatalf("expected u1 balance %d, got %d", RewardLevel1+RewardLevel2, b)
	}

	var txs []models.RewardTransaction
	if err := db.Where("user_id = ?", "u1").Find(&txs).Error; err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	typeCount := map[string]int{}
	for _, tx := range txs {
		typeCount[tx.Type]++
	}
	if typeCount[models.RewardTypeReferralLevel1] != 1 || typeCount[models.RewardTypeReferralLevel2] != 1 {
		t.Fatalf("unexpected u1 transactions: %+v", typeCount)
	}
}

// 链深封顶两级：u4 注册时 u1 不再得奖励
func TestAttribute_ChainCapsAtTwoLevels(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	codeU1, _ := s.GetOrCreateCode(ctx, "u1")
	s.Attribute(ctx, "u2", codeU1)
	codeU2, _ := s.GetOrCreateCode(ctx, "u2")
	s.Attribute(ctx, "u3", codeU2)
	codeU3, _ := s.GetOrCreateCode(ctx, "u3")

	referral, err := s.Attribute(ctx, "u4", codeU3)
	if err != nil {
		t.Fatalf("attribute u4: %v", err)
	}
	if referral.ReferrerLevel1ID != "u3" {
		t.Fatalf("expected level1 u3, got %s", referral.ReferrerLevel1ID)
	}
	if referral.ReferrerLevel2ID == nil || *referral.ReferrerLevel2ID != "u2" {
		t.Fatalf("expected level2 u2, got %v", referral.ReferrerLevel2ID)
	}

	reward := newRewardService(db)
	// u1 只有 u2 注册的 75000 和 u3 注册的 25000
	if b, _ := reward.GetBalance(ctx, "u1"); b != RewardLevel1+RewardLevel2 {
		t.Fatalf("u1 must not earn beyond two levels, got %d", b)
	}
}

func TestAttribute_SelfReferral(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	code, _ := s.GetOrCreateCode(ctx, "u1")
	referral, err := s.Attribute(ctx, "u1", code)
	if err != nil {
		t.Fatalf("attribute: %v", err)
	}
	if referral != nil {
		t.Fatal("self-referral must not create a referral")
	}

	reward := newRewardService(db)
	if b, _ := reward.GetBalance(ctx, "u1"); b != 0 {
		t.Fatalf("self-referral must not earn, got %d", b)
	}
}

func TestAttribute_UnknownCode(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	referral, err := s.Attribute(ctx, "u1", "REF_NOPE0000")
	if err != nil {
		t.Fatalf("attribute: %v", err)
	}
	if referral != nil {
		t.Fatal("unknown code must not create a referral")
	}
}

// 归因终态一次性：第二次归因（哪怕换了码）是无操作，不重复发奖
func TestAttribute_AlreadyAttributed(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	codeU1, _ := s.GetOrCreateCode(ctx, "u1")
	codeU2, _ := s.GetOrCreateCode(ctx, "u2")

	if _, err := s.Attribute(ctx, "u3", codeU1); err != nil {
		t.Fatalf("first attribute: %v", err)
	}
	second, err := s.Attribute(ctx, "u3", codeU2)
	if err != nil {
		t.Fatalf("second attribute: %v", err)
	}
	if second != nil {
		t.Fatal("second attribution must be a no-op")
	}

	reward := newRewardService(db)
	if b, _ := reward.GetBalance(ctx, "u1"); b != RewardLevel1 {
		t.Fatalf("expected single reward %d, got %d", RewardLevel1, b)
	}
	if b, _ := reward.GetBalance(ctx, "u2"); b != 0 {
		t.Fatalf("u2 must not earn from failed attribution, got %d", b)
	}

	var count int64
	db.Model(&models.Referral{}).Where("referred_user_id = ?", "u3").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 referral row, got %d", count)
	}
}

func TestCodeResp_Link(t *testing.T) {
	db := newTestDB(t)
	s := newReferralService(db)
	ctx := context.Background()

	resp, err := s.CodeResp(ctx, "u1")
	if err != nil {
		t.Fatalf("code resp: %v", err)
	}
	want := "https://app.example.com?ref=" + resp.Code
	if resp.ReferralLink != want {
		t.Fatalf("expected link %s, got %s", want, resp.ReferralLink)
	}
}
