package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"naikkelas/config"
	"naikkelas/dao"
	"naikkelas/dao/cache"
	"naikkelas/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Users{},
		&models.ReferralCode{},
		&models.Referral{},
		&models.UserReward{},
		&models.RewardTransaction{},
		&models.UserCredits{},
		&models.TopupTransaction{},
		&models.Chat{},
		&models.Message{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestCache Redis 不可达时缓存退化为穿透，不影响正确性
func newTestCache() *cache.ReferralCache {
	rds := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
		MaxRetries:   -1,
	})
	return cache.NewReferralCache(rds)
}

func newTestConfig() *config.Config {
	return &config.Config{
		App: &config.App{Env: "test", SiteURL: "https://app.example.com"},
		Jwt: &config.Jwt{Secret: "test-secret", ExpiresIn: 3600},
	}
}

func newRewardService(db *gorm.DB) *RewardService {
	return &RewardService{
		DB:          db,
		RewardDAO:   dao.NewReward(db),
		ReferralDAO: dao.NewReferral(db),
	}
}

func newReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{
		Config:          newTestConfig(),
		DB:              db,
		ReferralCodeDAO: dao.NewReferralCode(db),
		ReferralDAO:     dao.NewReferral(db),
		Cache:           newTestCache(),
		RewardService:   newRewardService(db),
	}
}

func newCreditService(db *gorm.DB) *CreditService {
	return &CreditService{DB: db, CreditDAO: dao.NewCredit(db)}
}
