//go:build wireinject

package app

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/bootstrap"
	rconfig "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/recommender/config"
)

//go:generate go run github.com/google/wire/cmd/wire@v0.7.0
func Initialize(
	ctx context.Context,
	cfg *rconfig.Config,
	logger *slog.Logger,
) (*bootstrap.ServerApp, func(), error) {
	wire.Build(
		recommenderProviderSet,
	)
	return nil, nil, nil
}
