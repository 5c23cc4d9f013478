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

package domain

// StatusReport 是上报给考试注册中心的服务器状态。
// Status 来自引擎，内容对控制端不透明，原样透传。
type StatusReport struct {
	MonitoringPassphrase string         `json:"monitoring_passphrase"`
	ServerVersion        string         `json:"server_version"`
	Status               map[string]any `json:"status"`
}

// PackageStateChange 通知注册中心某个考试包发生了状态变更
type PackageStateChange struct {
	ExternalID string `json:"external_id"`
	OldState   string `json:"old_state"`
	NewState   string `json:"new_state"`
	// ChangedAt UTC Unix毫秒数
	ChangedAt int64 `json:"changed_at"`
}
