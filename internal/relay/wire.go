// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package relay

import (
	"github.com/ecodeclub/examctrl/internal/relay/internal/service"
	"github.com/ecodeclub/examctrl/internal/relay/internal/web"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

func InitHandler(client *redis.Client) *Handler {
	wire.Build(
		service.NewService,
		web.NewHandler,
	)
	return new(Handler)
}

type Handler = web.Handler

type Service = service.Service
