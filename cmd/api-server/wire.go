//go:build wireinject
// +build wireinject

package main

import (
	"naikkelas/config"
	"naikkelas/dao"
	"naikkelas/dao/cache"
	"naikkelas/handler"
	"naikkelas/pkg/client"
	"naikkelas/pkg/database"
	"naikkelas/pkg/flip"
	"naikkelas/pkg/llm"
	"naikkelas/pkg/server"
	"naikkelas/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideFlipConfig,
		config.ProvideLLMConfig,
		config.ProvideOssConfig,
		flip.NewClient,
		llm.NewClient,
		server.NewGinEngine,
		cache.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Referral), "*"),
		wire.Struct(new(handler.Reward), "*"),
		wire.Struct(new(handler.Credit), "*"),
		wire.Struct(new(handler.Topup), "*"),
		wire.Struct(new(handler.Chat), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
