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

package engine

import (
	"net/http"
	"time"

	"github.com/ecodeclub/examctrl/internal/engine/internal/service"
	"github.com/gotomicro/ego/core/econf"
)

type Service = service.Service

// ErrNoSecurityCode 引擎没有下发安全码
var ErrNoSecurityCode = service.ErrNoSecurityCode

func InitService() Service {
	type Config struct {
		BaseURL        string        `yaml:"baseURL"`
		Username       string        `yaml:"username"`
		PassphraseFile string        `yaml:"passphraseFile"`
		Timeout        time.Duration `yaml:"timeout"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("engine", &cfg); err != nil {
		panic(err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	return service.NewHTTPEngineService(cfg.BaseURL, cfg.Username, cfg.PassphraseFile,
		&http.Client{Timeout: cfg.Timeout})
}
