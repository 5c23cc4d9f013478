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

type MessageKind string

const (
	KindPing          MessageKind = "ping"
	KindPong          MessageKind = "pong"
	KindCommand       MessageKind = "command"
	KindCommandResult MessageKind = "command_result"
	KindStatusReport  MessageKind = "status_report"
)

// Message 是控制端和考场代理之间的统一报文格式。
// Data 的结构由 Kind 决定，这里不做强约束。
type Message struct {
	UUID string         `json:"uuid"`
	Kind MessageKind    `json:"kind"`
	Data map[string]any `json:"data,omitempty"`
}

// AgentTask 是可以下发给考场代理的任务
type AgentTask string

const (
	TaskChangeKeycodes AgentTask = "change_keycodes"
	TaskRefreshExams   AgentTask = "refresh_exams"
)

func (t AgentTask) Valid() bool {
	switch t {
	case TaskChangeKeycodes, TaskRefreshExams:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	// TaskStatusStarted 代理在线，任务已经开始执行
	TaskStatusStarted TaskStatus = "started"
	// TaskStatusDeferred 代理不在线，等代理连上来再执行
	TaskStatusDeferred TaskStatus = "deferred_until_agent_is_contacted"
)

// TaskDispatch 是一次任务下发的结果
type TaskDispatch struct {
	MessageID string
	Task      AgentTask
	Status    TaskStatus
}
