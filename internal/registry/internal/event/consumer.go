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

package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/examctrl/internal/registry/internal/domain"
	"github.com/ecodeclub/examctrl/internal/registry/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

const stateEventTopic = "exam_package_state_events"

// PackageStateEvent 和考试包模块发出的事件保持一致
type PackageStateEvent struct {
	ExternalID string `json:"externalId"`
	OldState   string `json:"oldState"`
	NewState   string `json:"newState"`
	ChangedAt  int64  `json:"changedAt"`
}

// PackageStateEventConsumer 把考试包的状态变更转告注册中心。
// 注册中心拿到的是事后通知，不参与状态机本身。
type PackageStateEventConsumer struct {
	svc      service.StatusService
	consumer mq.Consumer
	logger   *elog.Component
}

func NewPackageStateEventConsumer(svc service.StatusService, q mq.MQ) (*PackageStateEventConsumer, error) {
	groupID := "registry"
	consumer, err := q.Consumer(stateEventTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &PackageStateEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("registry.PackageStateEventConsumer")),
	}, nil
}

func (c *PackageStateEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费考试包状态变更事件失败", elog.FieldErr(err))
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (c *PackageStateEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt PackageStateEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	return c.svc.NotifyPackageState(ctx, domain.PackageStateChange{
		ExternalID: evt.ExternalID,
		OldState:   evt.OldState,
		NewState:   evt.NewState,
		ChangedAt:  evt.ChangedAt,
	})
}
