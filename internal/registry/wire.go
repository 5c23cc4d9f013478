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

package registry

import (
	"bufio"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/examctrl/internal/engine"
	"github.com/ecodeclub/examctrl/internal/registry/internal/event"
	"github.com/ecodeclub/examctrl/internal/registry/internal/service"
	"github.com/ecodeclub/examctrl/internal/registry/internal/web"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule(q mq.MQ, ec ecache.Cache, engineSvc engine.Service) (*Module, error) {
	wire.Build(
		InitClient,
		service.NewStatusService,
		web.NewHandler,
		event.NewPackageStateEventConsumer,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

func InitClient() service.Client {
	type Config struct {
		BaseURL      string                 `yaml:"baseURL"`
		Username     string                 `yaml:"username"`
		PasswordFile string                 `yaml:"passwordFile"`
		Timeout      time.Duration          `yaml:"timeout"`
		Identity     service.ServerIdentity `yaml:"identity"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("registry", &cfg); err != nil {
		panic(err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	var password string
	if cfg.PasswordFile != "" {
		password = readFirstLine(cfg.PasswordFile)
	}
	return service.NewHTTPRegistryClient(cfg.BaseURL, cfg.Identity, cfg.Username, password,
		&http.Client{Timeout: cfg.Timeout})
}

func readFirstLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		panic("口令文件是空的: " + path)
	}
	return strings.TrimSpace(scanner.Text())
}

type Module struct {
	Hdl      *Handler
	Consumer *Consumer
}

type Handler = web.Handler

type Consumer = event.PackageStateEventConsumer

type Service = service.StatusService
