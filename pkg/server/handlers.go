package server

import (
	"naikkelas/handler"
)

type Handlers struct {
	Auth     *handler.Auth
	User     *handler.User
	Referral *handler.Referral
	Reward   *handler.Reward
	Credit   *handler.Credit
	Topup    *handler.Topup
	Chat     *handler.Chat
}
