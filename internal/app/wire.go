//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"hoverrace/internal/config"
)

var providerSet = wire.NewSet(
	provideLogger,
	provideAssets,
	provideSeed,
	provideAudio,
	provideSpectators,
	NewApp,
)

// Initialize builds an App from settings.
func Initialize(ctx context.Context, s *config.Settings) (*App, error) {
	wire.Build(providerSet)
	return nil, nil
}
