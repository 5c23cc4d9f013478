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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ecodeclub/examctrl/internal/relay/internal/domain"
	"github.com/ecodeclub/examctrl/internal/relay/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"
)

const (
	maxMessageSize = 1 << 20
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	// 必须小于 pongWait
	pingInterval = (pongWait * 9) / 10
)

type Handler struct {
	svc      service.Service
	upgrader websocket.Upgrader
	logger   *elog.Component
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 代理走内网直连，没有浏览器 Origin
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: elog.DefaultLogger.With(elog.FieldComponent("relay.Handler")),
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/agent")
	g.GET("/websocket", h.Websocket)
	g.POST("/add_agent_task", ginx.B[AddAgentTaskReq](h.AddAgentTask))
	ui := server.Group("/ui")
	ui.GET("/websocket", h.UIWebsocket)
}

func (h *Handler) AddAgentTask(ctx *ginx.Context, req AddAgentTaskReq) (ginx.Result, error) {
	res, err := h.svc.DispatchTask(ctx, domain.AgentTask(req.Name))
	switch {
	case errors.Is(err, service.ErrUnknownTask):
		return unknownAgentTaskResult, err
	case err != nil:
		return systemErrorResult, err
	default:
		return ginx.Result{
			Data: AddAgentTaskResp{
				Status:    string(res.Status),
				AgentTask: AgentTask{Name: string(res.Task)},
				MessageID: res.MessageID,
			},
		}, nil
	}
}

// Websocket 是考场代理的长连接入口。
// 发给代理的消息经 redis 频道转发到这条连接上，代理的应用层 ping 原样回 pong，
// 代理上报的任务结果和状态转发到 UI 频道。
func (h *Handler) Websocket(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Error("升级 websocket 失败", elog.FieldErr(err))
		return
	}
	defer conn.Close()

	sub := h.svc.Subscribe(ctx.Request.Context())
	defer sub.Close()

	outbound := make(chan []byte, 8)
	done := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(conn, sub, outbound, done)
	}()
	h.readLoop(ctx.Request.Context(), conn, outbound, writerDone)
	close(done)
}

// UIWebsocket 是考务 UI 的长连接入口，只下行：
// 代理上报的消息经 UI 频道转发到这条连接上。
func (h *Handler) UIWebsocket(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Error("升级 websocket 失败", elog.FieldErr(err))
		return
	}
	defer conn.Close()

	sub := h.svc.SubscribeUI(ctx.Request.Context())
	defer sub.Close()

	done := make(chan struct{})
	go h.writeLoop(conn, sub, nil, done)
	h.discardLoop(conn)
	close(done)
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn,
	outbound chan<- []byte, writerDone <-chan struct{}) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Error("读取代理消息失败", elog.FieldErr(err))
			}
			return
		}
		var msg domain.Message
		if err = json.Unmarshal(raw, &msg); err != nil {
			h.logger.Warn("代理消息不是合法 JSON", elog.FieldErr(err))
			continue
		}
		switch msg.Kind {
		case domain.KindPing:
			// 复用 ping 的 uuid，代理靠它对账
			data, merr := json.Marshal(domain.Message{UUID: msg.UUID, Kind: domain.KindPong})
			if merr != nil {
				h.logger.Error("序列化 pong 失败", elog.FieldErr(merr))
				continue
			}
			select {
			case outbound <- data:
			case <-writerDone:
				// 写协程已经退出，这条连接废了
				return
			}
		case domain.KindCommandResult:
			if status, _ := msg.Data["command_status"].(string); strings.HasPrefix(status, "error_") {
				uuid, _ := msg.Data["command_uuid"].(string)
				h.logger.Error("代理执行任务失败",
					elog.String("commandUuid", uuid),
					elog.String("commandStatus", status))
			}
			if ferr := h.svc.ForwardToUI(ctx, raw); ferr != nil {
				h.logger.Error("转发任务结果给 UI 失败", elog.FieldErr(ferr))
			}
		case domain.KindStatusReport:
			if ferr := h.svc.ForwardToUI(ctx, raw); ferr != nil {
				h.logger.Error("转发状态上报给 UI 失败", elog.FieldErr(ferr))
			}
		default:
			h.logger.Warn("忽略未知的代理消息",
				elog.String("kind", string(msg.Kind)),
				elog.String("uuid", msg.UUID))
		}
	}
}

// discardLoop 只消费控制帧，UI 不会发业务消息
func (h *Handler) discardLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop 是唯一向连接写数据的 goroutine
func (h *Handler) writeLoop(conn *websocket.Conn, sub *redis.PubSub,
	outbound <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	msgs := sub.Channel()
	for {
		select {
		case m, ok := <-msgs:
			if !ok {
				return
			}
			if err := h.write(conn, websocket.TextMessage, []byte(m.Payload)); err != nil {
				return
			}
		case data := <-outbound:
			if err := h.write(conn, websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := h.write(conn, websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, messageType int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteMessage(messageType, data)
	if err != nil {
		h.logger.Error("向代理写消息失败", elog.FieldErr(err))
	}
	return err
}
