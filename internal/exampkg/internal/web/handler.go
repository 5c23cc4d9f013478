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

package web

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ecodeclub/examctrl/internal/exampkg/internal/domain"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

var sha256Regexp = regexp.MustCompile(`^[0-9a-f]{64}$`)

type Handler struct {
	svc    service.Service
	logger *elog.Component
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger.With(elog.FieldComponent("exampkg.Handler")),
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/exam")
	g.POST("/save_exam_info", ginx.B[SaveExamInfoReq](h.SaveExamInfo))
	g.POST("/get_current_scheduled_exam_package", ginx.W(h.CurrentPackage))
	g.POST("/set_current_scheduled_exam_package_state", ginx.B[SetPackageStateReq](h.SetPackageState))
	g.POST("/get_scheduled_exam", ginx.B[GetScheduledExamReq](h.ScheduledExam))
}

func (h *Handler) SaveExamInfo(ctx *ginx.Context, req SaveExamInfoReq) (ginx.Result, error) {
	if reason, ok := h.validateSaveExamInfo(req); !ok {
		return invalidInputResult(reason), fmt.Errorf("非法的考试信息上报: %s", reason)
	}
	err := h.svc.SaveExamInfo(ctx.Request.Context(), req.toDomain())
	switch {
	case errors.Is(err, service.ErrDuplicateRequest):
		return duplicateRequestResult, err
	case errors.Is(err, service.ErrUnknownScheduledExam):
		return unknownScheduledExamResult, err
	case errors.Is(err, service.ErrInvalidTimeRange):
		return invalidInputResult(err.Error()), err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{}, nil
}

func (h *Handler) CurrentPackage(ctx *ginx.Context) (ginx.Result, error) {
	pkg, err := h.svc.CurrentPackage(ctx.Request.Context())
	if errors.Is(err, service.ErrNoPackage) {
		// 没有当前考试包不是错误，返回空数据
		return ginx.Result{}, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newScheduledExamPackage(pkg)}, nil
}

func (h *Handler) SetPackageState(ctx *ginx.Context, req SetPackageStateReq) (ginx.Result, error) {
	prev, err := h.svc.SetCurrentPackageState(ctx.Request.Context(),
		req.ExternalID, domain.PackageState(req.State))
	switch {
	case errors.Is(err, service.ErrPackageNotCurrent):
		return packageNotCurrentResult, err
	case errors.Is(err, service.ErrInvalidStateTransition),
		errors.Is(err, service.ErrStateConflict):
		return invalidStateTransitionResult, err
	case err != nil:
		return systemErrorResult, err
	}
	if prev == domain.PackageStateUnset {
		return ginx.Result{}, nil
	}
	return ginx.Result{Data: prev.String()}, nil
}

func (h *Handler) ScheduledExam(ctx *ginx.Context, req GetScheduledExamReq) (ginx.Result, error) {
	exam, err := h.svc.ScheduledExam(ctx.Request.Context(), req.ExternalID)
	if errors.Is(err, service.ErrExamNotFound) {
		return ginx.Result{}, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newScheduledExam(exam)}, nil
}

func (h *Handler) validateSaveExamInfo(req SaveExamInfoReq) (string, bool) {
	if req.RequestID == "" {
		return "request_id 为空", false
	}
	if req.RawData == nil {
		return "raw_data 缺失", false
	}
	for _, exam := range req.ScheduledExams {
		if exam.ExternalID == "" {
			return "考试 external_id 为空", false
		}
		if !exam.StartTime.Before(exam.EndTime) {
			return fmt.Sprintf("考试 %s 开始时间晚于结束时间", exam.ExternalID), false
		}
		if exam.ExamFileInfo.Size <= 0 {
			return fmt.Sprintf("考试 %s 的文件大小非法", exam.ExternalID), false
		}
		if !sha256Regexp.MatchString(exam.ExamFileInfo.SHA256) {
			return fmt.Sprintf("考试 %s 的文件 sha256 非法", exam.ExternalID), false
		}
	}
	for _, pkg := range req.ScheduledExamPackages {
		if pkg.ExternalID == "" {
			return "考试包 external_id 为空", false
		}
		if !pkg.StartTime.Before(pkg.EndTime) {
			return fmt.Sprintf("考试包 %s 开始时间晚于结束时间", pkg.ExternalID), false
		}
	}
	return "", true
}
