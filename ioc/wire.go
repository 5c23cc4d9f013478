//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/examctrl/internal/engine"
	"github.com/ecodeclub/examctrl/internal/exampkg"
	"github.com/ecodeclub/examctrl/internal/registry"
	"github.com/ecodeclub/examctrl/internal/relay"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		exampkg.InitHandler,
		relay.InitHandler,
		engine.InitService,
		registry.InitModule,
		wire.FieldsOf(new(*registry.Module), "Hdl"),
		initConsumers,
		initGinxServer)
	return new(App), nil
}

func initConsumers(module *registry.Module) []Consumer {
	return []Consumer{module.Consumer}
}
