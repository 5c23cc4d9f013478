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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/examctrl/internal/exampkg/internal/domain"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/event"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrDuplicateRequest     = repository.ErrDuplicateRequest
	ErrUnknownScheduledExam = repository.ErrUnknownScheduledExam
	ErrNoPackage            = repository.ErrNoPackage
	ErrExamNotFound         = repository.ErrExamNotFound
	ErrStateConflict        = repository.ErrPackageStateConflict

	ErrPackageNotCurrent      = errors.New("不是当前考试包")
	ErrInvalidStateTransition = errors.New("非法的考试包状态变更")
	ErrInvalidTimeRange       = errors.New("开始时间必须早于结束时间")
)

type Service interface {
	// SaveExamInfo 落库一次注册中心的考试信息上报，整体成功或整体失败
	SaveExamInfo(ctx context.Context, info domain.ExamInfo) error
	// CurrentPackage 返回当前考试包。没有当前考试包时按规则挑选一个并标记，
	// 没有合适的候选返回 ErrNoPackage
	CurrentPackage(ctx context.Context) (domain.ScheduledExamPackage, error)
	// SetCurrentPackageState 推进当前考试包的状态，返回变更前的状态。
	// 重复设置同一个状态是幂等的成功
	SetCurrentPackageState(ctx context.Context, externalID string, state domain.PackageState) (domain.PackageState, error)
	ScheduledExam(ctx context.Context, externalID string) (domain.ScheduledExam, error)
}

type service struct {
	repo     repository.ExamRepository
	producer event.StateEventProducer
	logger   *elog.Component
	nowFunc  func() time.Time
}

func NewService(repo repository.ExamRepository, producer event.StateEventProducer) Service {
	return &service{
		repo:     repo,
		producer: producer,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("exampkg.Service")),
		nowFunc:  time.Now,
	}
}

func (s *service) SaveExamInfo(ctx context.Context, info domain.ExamInfo) error {
	for _, exam := range info.ScheduledExams {
		if !exam.StartTime.Before(exam.EndTime) {
			return fmt.Errorf("%w: 考试 %s", ErrInvalidTimeRange, exam.ExternalID)
		}
	}
	for _, pkg := range info.ScheduledExamPackages {
		if !pkg.StartTime.Before(pkg.EndTime) {
			return fmt.Errorf("%w: 考试包 %s", ErrInvalidTimeRange, pkg.ExternalID)
		}
	}
	return s.repo.SaveExamInfo(ctx, info)
}

func (s *service) CurrentPackage(ctx context.Context) (domain.ScheduledExamPackage, error) {
	return s.repo.CurrentPackage(ctx, s.nowFunc())
}

func (s *service) SetCurrentPackageState(ctx context.Context, externalID string, state domain.PackageState) (domain.PackageState, error) {
	if state == domain.PackageStateUnset || !state.Valid() {
		return domain.PackageStateUnset, fmt.Errorf("%w: 未知状态 %q", ErrInvalidStateTransition, state)
	}
	pkg, err := s.repo.FindCurrentByExternalID(ctx, externalID)
	if errors.Is(err, ErrNoPackage) {
		return domain.PackageStateUnset, fmt.Errorf("%w: %s", ErrPackageNotCurrent, externalID)
	}
	if err != nil {
		return domain.PackageStateUnset, err
	}
	prev := pkg.State
	if prev == state {
		// 幂等的重复设置，不会更新 state_changed_at
		return prev, nil
	}
	next, ok := prev.Next()
	if !ok || next != state {
		return domain.PackageStateUnset,
			fmt.Errorf("%w: 不能从 %q 变更到 %q", ErrInvalidStateTransition, prev, state)
	}
	now := s.nowFunc()
	if err = s.repo.UpdateCurrentState(ctx, pkg.ID, prev, state, now); err != nil {
		return domain.PackageStateUnset, err
	}
	evt := event.PackageStateEvent{
		ExternalID: externalID,
		OldState:   prev.String(),
		NewState:   state.String(),
		ChangedAt:  now.UnixMilli(),
	}
	// 通知只是事后告知，发送失败不影响状态变更本身
	if perr := s.producer.Produce(ctx, evt); perr != nil {
		s.logger.Error("发送考试包状态变更事件失败",
			elog.FieldErr(perr),
			elog.Any("event", evt))
	}
	return prev, nil
}

func (s *service) ScheduledExam(ctx context.Context, externalID string) (domain.ScheduledExam, error) {
	return s.repo.FindExamByExternalID(ctx, externalID)
}
