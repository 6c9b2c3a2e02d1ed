package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewReferralCode,
	NewReferral,
	NewReward,
	NewCredit,
	NewTopup,
	NewChat,
	NewMessage,
)
