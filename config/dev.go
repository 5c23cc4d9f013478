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

package config

// Config 是本地开发和集成测试用的默认配置，部署环境以 config/*.yaml 为准
var Config = ExamctrlConfig{
	DB: DBConfig{
		DSN: "root:root@tcp(localhost:13316)/examctrl?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=True&loc=UTC&timeout=1s&readTimeout=3s&writeTimeout=3s&interpolateParams=true",
	},
	Redis: RedisConfig{
		Addr: "localhost:6379",
	},
	Engine: EngineConfig{
		BaseURL:        "https://localhost:8443",
		Username:       "valvoja",
		PassphraseFile: "/etc/examctrl/engine-passphrase",
	},
	Registry: RegistryConfig{
		BaseURL:  "https://registry.example.org",
		Domain:   "koe.example.org",
		Hostname: "exam-server-1",
		ID:       "1",
	},
}
