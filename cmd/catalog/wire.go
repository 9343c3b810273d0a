//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/reelbase/catalog/internal/auth"
	"github.com/reelbase/catalog/internal/biz"
	"github.com/reelbase/catalog/internal/conf"
	"github.com/reelbase/catalog/internal/data"
	"github.com/reelbase/catalog/internal/server"
	"github.com/reelbase/catalog/internal/service"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Auth, *conf.Catalog, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		server.ProviderSet,
		data.ProviderSet,
		biz.ProviderSet,
		service.ProviderSet,
		wire.Bind(new(biz.TokenIssuer), new(*auth.JWTManager)),
		newApp,
	))
}
