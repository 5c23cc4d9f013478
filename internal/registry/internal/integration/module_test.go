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

//go:build e2e

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/examctrl/internal/engine"
	"github.com/ecodeclub/examctrl/internal/registry"
	"github.com/ecodeclub/examctrl/internal/registry/internal/web"
	"github.com/ecodeclub/examctrl/internal/test"
	testioc "github.com/ecodeclub/examctrl/internal/test/ioc"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeRegistry struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (f *fakeRegistry) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/servers/status_update" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.payloads = append(f.payloads, payload)
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func (f *fakeRegistry) received() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := make([]map[string]any, len(f.payloads))
	copy(res, f.payloads)
	return res
}

type ModuleTestSuite struct {
	suite.Suite
	server   *egin.Component
	registry *fakeRegistry
	module   *registry.Module
}

func TestModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

func (s *ModuleTestSuite) SetupSuite() {
	passphrasePath := filepath.Join(s.T().TempDir(), "passphrase")
	require.NoError(s.T(), os.WriteFile(passphrasePath, []byte("salasana\n"), 0o600))

	engineSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/version":
			_, _ = w.Write([]byte(`{"version":"2.5.0"}`))
		case "/api/single-security-code":
			_, _ = w.Write([]byte(`{"securityCode":"987654"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	s.T().Cleanup(engineSrv.Close)

	s.registry = &fakeRegistry{}
	registrySrv := httptest.NewServer(s.registry.handler())
	s.T().Cleanup(registrySrv.Close)

	econf.Set("engine", map[string]any{
		"baseURL":        engineSrv.URL,
		"username":       "valvoja",
		"passphraseFile": passphrasePath,
	})
	econf.Set("registry", map[string]any{
		"baseURL": registrySrv.URL,
		"identity": map[string]any{
			"domain":   "koe.example.org",
			"hostname": "exam-server-1",
			"id":       "42",
		},
	})

	engineSvc := engine.InitService()
	module, err := registry.InitModule(testioc.InitMQ(), testioc.InitCache(), engineSvc)
	require.NoError(s.T(), err)
	s.module = module

	econf.Set("server", map[string]any{"contextTimeout": "5s"})
	server := egin.Load("server").Build()
	module.Hdl.PublicRoutes(server.Engine)
	s.server = server
}

func (s *ModuleTestSuite) TestUpdateEngineStatus() {
	recorder := test.NewJSONResponseRecorder[web.UpdateEngineStatusResp]()
	req, err := http.NewRequest(http.MethodPost, "/status/update_engine_status",
		iox.NewJSONReader(web.UpdateEngineStatusReq{
			Status: map[string]any{"uptime": 3600},
		}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	s.server.ServeHTTP(recorder, req)
	require.Equal(s.T(), 200, recorder.Code)
	assert.True(s.T(), recorder.MustScan().Data.OK)

	payloads := s.registry.received()
	require.NotEmpty(s.T(), payloads)
	last := payloads[len(payloads)-1]
	assert.Equal(s.T(), "salasana", last["monitoring_passphrase"])
	assert.Equal(s.T(), "2.5.0", last["server_version"])
	status, ok := last["status"].(map[string]any)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "987654", status["singleSecurityCode"])
	assert.Equal(s.T(), float64(3600), status["uptime"])

	// 快照也能查回来
	lastRecorder := test.NewJSONResponseRecorder[map[string]any]()
	lastReq, err := http.NewRequest(http.MethodPost, "/status/get_last_engine_status", nil)
	require.NoError(s.T(), err)
	s.server.ServeHTTP(lastRecorder, lastReq)
	require.Equal(s.T(), 200, lastRecorder.Code)
	assert.Equal(s.T(), "2.5.0", lastRecorder.MustScan().Data["server_version"])
}

func (s *ModuleTestSuite) TestUpdateEngineStatus_MissingStatus() {
	recorder := test.NewJSONResponseRecorder[web.UpdateEngineStatusResp]()
	req, err := http.NewRequest(http.MethodPost, "/status/update_engine_status",
		iox.NewJSONReader(map[string]any{}))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	s.server.ServeHTTP(recorder, req)
	assert.Equal(s.T(), 500, recorder.Code)
}

func (s *ModuleTestSuite) TestConsumePackageStateEvent() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.module.Consumer.Start(ctx)

	q := testioc.InitMQ()
	producer, err := q.Producer("exam_package_state_events")
	require.NoError(s.T(), err)
	evt := map[string]any{
		"externalId": "pkg-1",
		"oldState":   "running",
		"newState":   "stopping",
		"changedAt":  1700000000000,
	}
	data, err := json.Marshal(evt)
	require.NoError(s.T(), err)
	_, err = producer.Produce(ctx, &mq.Message{Value: data})
	require.NoError(s.T(), err)

	require.Eventually(s.T(), func() bool {
		for _, payload := range s.registry.received() {
			if change, ok := payload["package_state_change"].(map[string]any); ok {
				return change["external_id"] == "pkg-1" && change["new_state"] == "stopping"
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)
}
