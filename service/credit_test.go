package service

import (
	"context"
	"testing"

	"naikkelas/pkg/flip"
)

func TestGetOrCreateBalance_Trial(t *testing.T) {
	db := newTestDB(t)
	s := newCreditService(db)
	ctx := context.Background()

	balance, err := s.GetOrCreateBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if balance != DefaultTrialCredits {
		t.Fatalf("expected trial credits %d, got %d", DefaultTrialCredits, balance)
	}

	// 再来一次不会重复开户
	balance, err = s.GetOrCreateBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if balance != DefaultTrialCredits {
		t.Fatalf("expected unchanged balance, got %d", balance)
	}
}

func TestRequireMinimum(t *testing.T) {
	db := newTestDB(t)
	s := newCreditService(db)
	ctx := context.Background()

	if _, err := s.GetOrCreateBalance(ctx, "u1"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	// 扣到门槛之下
	if err := s.Debit(ctx, "u1", DefaultTrialCredits-500); err != nil {
		t.Fatalf("debit: %v", err)
	}

	balance, allowed, err := s.RequireMinimum(ctx, "u1", flip.MinimumCreditsThreshold)
	if err != nil {
		t.Fatalf("require minimum: %v", err)
	}
	if balance != 500 {
		t.Fatalf("expected 500, got %d", balance)
	}
	if allowed {
		t.Fatal("500 credits must not pass a 1000 threshold")
	}

	if err := s.Credit(ctx, "u1", 500); err != nil {
		t.Fatalf("credit: %v", err)
	}
	_, allowed, err = s.RequireMinimum(ctx, "u1", flip.MinimumCreditsThreshold)
	if err != nil {
		t.Fatalf("require minimum: %v", err)
	}
	if !allowed {
		t.Fatal("exact threshold balance must pass")
	}
}

func TestDebit(t *testing.T) {
	db := newTestDB(t)
	s := newCreditService(db)
	ctx := context.Background()

	if _, err := s.GetOrCreateBalance(ctx, "u1"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := s.Debit(ctx, "u1", 1200); err != nil {
		t.Fatalf("debit: %v", err)
	}
	balance, _ := s.GetOrCreateBalance(ctx, "u1")
	if balance != DefaultTrialCredits-1200 {
		t.Fatalf("expected %d, got %d", DefaultTrialCredits-1200, balance)
	}

	// 0 和负数都是无操作
	if err := s.Debit(ctx, "u1", 0); err != nil {
		t.Fatalf("debit 0: %v", err)
	}
	if err := s.Debit(ctx, "u1", -100); err != nil {
		t.Fatalf("debit negative: %v", err)
	}
	if b, _ := s.GetOrCreateBalance(ctx, "u1"); b != balance {
		t.Fatalf("noop debit changed balance: %d -> %d", balance, b)
	}

	if err := s.Debit(ctx, "ghost", 100); err == nil {
		t.Fatal("expected error debiting missing account")
	}
}

// 用量结算在生成之后，余额允许打穿到负数
func TestDebit_Overdraft(t *testing.T) {
	db := newTestDB(t)
	s := newCreditService(db)
	ctx := context.Background()

	if _, err := s.GetOrCreateBalance(ctx, "u1"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := s.Debit(ctx, "u1", DefaultTrialCredits+2500); err != nil {
		t.Fatalf("debit: %v", err)
	}
	balance, _ := s.GetOrCreateBalance(ctx, "u1")
	if balance != -2500 {
		t.Fatalf("expected -2500, got %d", balance)
	}
}

func TestCredit_CreatesAccountWhenMissing(t *testing.T) {
	db := newTestDB(t)
	s := newCreditService(db)
	ctx := context.Background()

	if err := s.Credit(ctx, "u1", 25000); err != nil {
		t.Fatalf("credit: %v", err)
	}
	balance, err := s.GetOrCreateBalance(ctx, "u1")
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	// 充值开的户没有试用额度
	if balance != 25000 {
		t.Fatalf("expected 25000, got %d", balance)
	}

	if err := s.Credit(ctx, "u1", 0); err != nil {
		t.Fatalf("credit 0: %v", err)
	}
	if b, _ := s.GetOrCreateBalance(ctx, "u1"); b != 25000 {
		t.Fatalf("noop credit changed balance: %d", b)
	}
}
