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

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/examctrl/internal/relay/internal/domain"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// AgentChannel 是控制端向考场代理下发消息用的 redis 频道
	AgentChannel = "examctrl:agent"
	// UIChannel 是代理上报消息转发给考务 UI 用的 redis 频道
	UIChannel = "examctrl:ui"
)

var ErrUnknownTask = errors.New("未知的代理任务")

type Service interface {
	// DispatchTask 向考场代理下发一个任务。
	// 代理不在线时消息会丢，但任务状态会告知调用方需要等代理重连。
	DispatchTask(ctx context.Context, task domain.AgentTask) (domain.TaskDispatch, error)
	// Subscribe 订阅发给代理的消息，调用方负责 Close
	Subscribe(ctx context.Context) *redis.PubSub
	// ForwardToUI 把代理上报的消息原样转发给考务 UI，没有 UI 在看时消息直接丢弃
	ForwardToUI(ctx context.Context, payload []byte) error
	// SubscribeUI 订阅转发给考务 UI 的消息，调用方负责 Close
	SubscribeUI(ctx context.Context) *redis.PubSub
}

type service struct {
	client *redis.Client
	logger *elog.Component
}

func NewService(client *redis.Client) Service {
	return &service{
		client: client,
		logger: elog.DefaultLogger.With(elog.FieldComponent("relay.Service")),
	}
}

func (s *service) DispatchTask(ctx context.Context, task domain.AgentTask) (domain.TaskDispatch, error) {
	if !task.Valid() {
		return domain.TaskDispatch{}, fmt.Errorf("%w: %s", ErrUnknownTask, task)
	}
	msg := domain.Message{
		UUID: shortuuid.New(),
		Kind: domain.KindCommand,
		Data: map[string]any{
			"command": string(task),
		},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return domain.TaskDispatch{}, fmt.Errorf("序列化代理消息失败: %w", err)
	}
	// Publish 返回收到消息的订阅者数量，以此判断代理是否在线
	receivers, err := s.client.Publish(ctx, AgentChannel, data).Result()
	if err != nil {
		return domain.TaskDispatch{}, fmt.Errorf("发布代理消息失败: %w", err)
	}
	res := domain.TaskDispatch{
		MessageID: msg.UUID,
		Task:      task,
		Status:    domain.TaskStatusStarted,
	}
	if receivers == 0 {
		res.Status = domain.TaskStatusDeferred
	}
	s.logger.Info("下发代理任务",
		elog.String("task", string(task)),
		elog.String("messageId", msg.UUID),
		elog.String("status", string(res.Status)))
	return res, nil
}

func (s *service) Subscribe(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, AgentChannel)
}

func (s *service) ForwardToUI(ctx context.Context, payload []byte) error {
	if err := s.client.Publish(ctx, UIChannel, payload).Err(); err != nil {
		return fmt.Errorf("转发消息给考务 UI 失败: %w", err)
	}
	return nil
}

func (s *service) SubscribeUI(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, UIChannel)
}
