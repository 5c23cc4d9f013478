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
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/examctrl/internal/engine"
	"github.com/ecodeclub/examctrl/internal/registry/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// 最近一次上报的状态快照
const lastReportKey = "status:last"

var ErrNoStatusReport = errors.New("还没有上报过状态")

//go:generate mockgen -source=./service.go -destination=../../mocks/service.mock.go -package=registrymocks StatusService
type StatusService interface {
	// ForwardEngineStatus 把引擎上报的状态补全之后转发给注册中心。
	// status 的内容对控制端不透明，只负责补充监控口令、版本号和安全码。
	ForwardEngineStatus(ctx context.Context, status map[string]any) (bool, error)
	// LastReport 返回最近一次转发的状态快照
	LastReport(ctx context.Context) (domain.StatusReport, error)
	// NotifyPackageState 把考试包状态变更告知注册中心
	NotifyPackageState(ctx context.Context, change domain.PackageStateChange) error
}

type statusService struct {
	engineSvc engine.Service
	client    Client
	cache     ecache.Cache
	logger    *elog.Component
}

func NewStatusService(engineSvc engine.Service, client Client, cache ecache.Cache) StatusService {
	return &statusService{
		engineSvc: engineSvc,
		client:    client,
		cache:     cache,
		logger:    elog.DefaultLogger.With(elog.FieldComponent("registry.StatusService")),
	}
}

func (s *statusService) ForwardEngineStatus(ctx context.Context, status map[string]any) (bool, error) {
	passphrase, err := s.engineSvc.Passphrase()
	if err != nil {
		return false, fmt.Errorf("读取监控口令失败: %w", err)
	}
	version, err := s.engineSvc.Version(ctx)
	if err != nil {
		return false, fmt.Errorf("获取引擎版本失败: %w", err)
	}
	// 引擎偶尔不下发安全码，拿不到就不带
	code, err := s.engineSvc.SingleSecurityCode(ctx)
	switch {
	case err == nil:
		status["singleSecurityCode"] = code
	case errors.Is(err, engine.ErrNoSecurityCode):
	default:
		s.logger.Warn("获取单场安全码失败", elog.FieldErr(err))
	}

	report := domain.StatusReport{
		MonitoringPassphrase: passphrase,
		ServerVersion:        version,
		Status:               status,
	}
	ok, err := s.client.PushServerStatus(ctx, report)
	if err != nil {
		return false, fmt.Errorf("上报服务器状态失败: %w", err)
	}
	s.cacheReport(ctx, report)
	return ok, nil
}

func (s *statusService) LastReport(ctx context.Context) (domain.StatusReport, error) {
	val := s.cache.Get(ctx, lastReportKey)
	if val.KeyNotFound() {
		return domain.StatusReport{}, ErrNoStatusReport
	}
	if val.Err != nil {
		return domain.StatusReport{}, fmt.Errorf("读取状态快照失败: %w", val.Err)
	}
	var report domain.StatusReport
	if err := json.Unmarshal([]byte(val.Val.(string)), &report); err != nil {
		return domain.StatusReport{}, fmt.Errorf("解析状态快照失败: %w", err)
	}
	return report, nil
}

func (s *statusService) NotifyPackageState(ctx context.Context, change domain.PackageStateChange) error {
	_, err := s.client.PushServerStatus(ctx, map[string]any{
		"package_state_change": change,
	})
	if err != nil {
		return fmt.Errorf("通知考试包状态变更失败: %w", err)
	}
	return nil
}

// 快照只是监控兜底，写失败不影响上报结果
func (s *statusService) cacheReport(ctx context.Context, report domain.StatusReport) {
	data, err := json.Marshal(report)
	if err != nil {
		s.logger.Error("序列化状态快照失败", elog.FieldErr(err))
		return
	}
	if err := s.cache.Set(ctx, lastReportKey, string(data), 24*time.Hour); err != nil {
		s.logger.Error("缓存状态快照失败", elog.FieldErr(err))
	}
}
