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

	"github.com/ecodeclub/examctrl/internal/registry/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.StatusService
}

func NewHandler(svc service.StatusService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/status")
	g.POST("/update_engine_status", ginx.B[UpdateEngineStatusReq](h.UpdateEngineStatus))
	g.POST("/get_last_engine_status", ginx.W(h.LastEngineStatus))
}

func (h *Handler) UpdateEngineStatus(ctx *ginx.Context, req UpdateEngineStatusReq) (ginx.Result, error) {
	if req.Status == nil {
		return invalidStatusResult, errors.New("引擎状态报文缺少 status")
	}
	ok, err := h.svc.ForwardEngineStatus(ctx, req.Status)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: UpdateEngineStatusResp{OK: ok},
	}, nil
}

func (h *Handler) LastEngineStatus(ctx *ginx.Context) (ginx.Result, error) {
	report, err := h.svc.LastReport(ctx)
	switch {
	case errors.Is(err, service.ErrNoStatusReport):
		return ginx.Result{}, nil
	case err != nil:
		return systemErrorResult, err
	default:
		return ginx.Result{Data: report}, nil
	}
}
