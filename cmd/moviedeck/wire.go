//go:build wireinject

package main

import (
	"github.com/amaumene/moviedeck/internal/api"
	"github.com/amaumene/moviedeck/internal/auth"
	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/google/wire"
)

var gatewaySet = wire.NewSet(
	metrics.New,
	provideTracing,
	provideTracerProvider,
	tmdb.DefaultFallback,
	tmdb.NewGateway,
)

func initializeApp() (*App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		gatewaySet,
		provideDatabase,
		provideStorage,
		provideRegistry,
		auth.NewService,
		api.NewServer,
		provideScheduler,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

func initializeGateway() (*tmdb.Gateway, func(), error) {
	wire.Build(
		config.Load,
		provideCLILogger,
		gatewaySet,
	)
	return nil, nil, nil
}

func initializeFavorites() (*favoritesEnv, func(), error) {
	wire.Build(
		config.Load,
		provideCLILogger,
		provideDatabase,
		provideStorage,
		wire.Struct(new(favoritesEnv), "*"),
	)
	return nil, nil, nil
}
