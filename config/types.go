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

// ExamctrlConfig 对应 config/*.yaml 的顶层结构
type ExamctrlConfig struct {
	DB       DBConfig
	Redis    RedisConfig
	Engine   EngineConfig
	Registry RegistryConfig
}

type DBConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr string
}

// EngineConfig 考试引擎一体机的访问配置
type EngineConfig struct {
	BaseURL        string
	Username       string
	PassphraseFile string
}

// RegistryConfig 考试注册中心的访问配置
type RegistryConfig struct {
	BaseURL      string
	Username     string
	PasswordFile string
	Domain       string
	Hostname     string
	ID           string
}
