package service

import (
	"context"
	"testing"

	"naikkelas/dao"
	"naikkelas/pkg/jwt"
	"naikkelas/types"

	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return &UserService{
		Config:          newTestConfig(),
		DB:              db,
		UserDAO:         dao.NewUsers(db),
		CreditService:   newCreditService(db),
		ReferralService: newReferralService(db),
	}
}

func TestSignIn_NewUser(t *testing.T) {
	db := newTestDB(t)
	s := newUserService(db)
	ctx := context.Background()

	resp, err := s.SignIn(ctx, &types.SignInRequest{UserID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if !resp.IsNew {
		t.Fatal("expected first signin to be new")
	}
	if resp.Credits != DefaultTrialCredits {
		t.Fatalf("expected trial credits %d, got %d", DefaultTrialCredits, resp.Credits)
	}

	claims, err := jwt.ParseToken([]byte("test-secret"), "access", resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "u1@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// 重复登录不翻新
	resp, err = s.SignIn(ctx, &types.SignInRequest{UserID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("second signin: %v", err)
	}
	if resp.IsNew {
		t.Fatal("expected repeat signin to not be new")
	}
	if resp.Credits != DefaultTrialCredits {
		t.Fatalf("repeat signin must not re-grant credits, got %d", resp.Credits)
	}
}

// 带邀请码首登触发归因，老用户带码登录不触发
func TestSignIn_WithReferralCode(t *testing.T) {
	db := newTestDB(t)
	s := newUserService(db)
	referral := newReferralService(db)
	reward := newRewardService(db)
	ctx := context.Background()

	if _, err := s.SignIn(ctx, &types.SignInRequest{UserID: "inviter", Email: "inviter@example.com"}); err != nil {
		t.Fatalf("setup inviter: %v", err)
	}
	code, err := referral.GetOrCreateCode(ctx, "inviter")
	if err != nil {
		t.Fatalf("create code: %v", err)
	}

	if _, err := s.SignIn(ctx, &types.SignInRequest{UserID: "invitee", Email: "invitee@example.com", RefCode: code}); err != nil {
		t.Fatalf("signin with code: %v", err)
	}
	if b, _ := reward.GetBalance(ctx, "inviter"); b != RewardLevel1 {
		t.Fatalf("expected inviter reward %d, got %d", RewardLevel1, b)
	}

	// 老用户再带码登录不重复归因
	if _, err := s.SignIn(ctx, &types.SignInRequest{UserID: "invitee", Email: "invitee@example.com", RefCode: code}); err != nil {
		t.Fatalf("repeat signin: %v", err)
	}
	if b, _ := reward.GetBalance(ctx, "inviter"); b != RewardLevel1 {
		t.Fatalf("repeat signin must not re-reward, got %d", b)
	}
}

// 无效邀请码不拦注册
func TestSignIn_InvalidReferralCode(t *testing.T) {
	db := newTestDB(t)
	s := newUserService(db)
	ctx := context.Background()

	resp, err := s.SignIn(ctx, &types.SignInRequest{UserID: "u1", Email: "u1@example.com", RefCode: "REF_BOGUS000"})
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if !resp.IsNew || resp.Credits != DefaultTrialCredits {
		t.Fatalf("invalid code must not block signup: %+v", resp)
	}
}

func TestUpdateName(t *testing.T) {
	db := newTestDB(t)
	s := newUserService(db)
	ctx := context.Background()

	if _, err := s.SignIn(ctx, &types.SignInRequest{UserID: "u1", Email: "u1@example.com"}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := s.UpdateName(ctx, "u1", "  Budi  "); err != nil {
		t.Fatalf("update name: %v", err)
	}
	profile, err := s.Me(ctx, "u1")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if profile.Name == nil || *profile.Name != "Budi" {
		t.Fatalf("expected trimmed name Budi, got %v", profile.Name)
	}

	if err := s.UpdateName(ctx, "u1", "   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}
