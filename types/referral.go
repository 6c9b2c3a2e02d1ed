package types

type ReferralCodeResp struct {
	Code         string `json:"code"`
	ReferralLink string `json:"referral_link"`
}

// ReferralStats 我的邀请统计
type ReferralStats struct {
	TotalReferrals     int64 `json:"total_referrals"`
	Level1Count        int64 `json:"level1_count"`
	Level2Count        int64 `json:"level2_count"`
	TotalRewardsEarned int64 `json:"total_rewards_earned"`
}
