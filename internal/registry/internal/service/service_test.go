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
	"testing"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit"
	"github.com/ecodeclub/examctrl/internal/engine"
	enginemocks "github.com/ecodeclub/examctrl/internal/engine/mocks"
	"github.com/ecodeclub/examctrl/internal/registry/internal/domain"
	registrymocks "github.com/ecodeclub/examctrl/internal/registry/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeCache struct {
	ecache.Cache
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Set(_ context.Context, key string, val any, _ time.Duration) error {
	f.data[key] = val.(string)
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string) ecache.Value {
	v, ok := f.data[key]
	if !ok {
		return ecache.Value{AnyValue: ekit.AnyValue{Err: errors.New("key not found")}}
	}
	return ecache.Value{AnyValue: ekit.AnyValue{Val: v}}
}

func TestStatusService_ForwardEngineStatus(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		mock       func(ctrl *gomock.Controller) (*enginemocks.MockService, *registrymocks.MockClient)
		status     map[string]any
		wantOK     bool
		assertErr  assert.ErrorAssertionFunc
		wantStatus map[string]any
	}{
		{
			name: "带安全码转发",
			mock: func(ctrl *gomock.Controller) (*enginemocks.MockService, *registrymocks.MockClient) {
				engineSvc := enginemocks.NewMockService(ctrl)
				engineSvc.EXPECT().Passphrase().Return("salasana", nil)
				engineSvc.EXPECT().Version(gomock.Any()).Return("2.5.0", nil)
				engineSvc.EXPECT().SingleSecurityCode(gomock.Any()).Return("987654", nil)
				client := registrymocks.NewMockClient(ctrl)
				client.EXPECT().PushServerStatus(gomock.Any(), domain.StatusReport{
					MonitoringPassphrase: "salasana",
					ServerVersion:        "2.5.0",
					Status: map[string]any{
						"uptime":             float64(3600),
						"singleSecurityCode": "987654",
					},
				}).Return(true, nil)
				return engineSvc, client
			},
			status:    map[string]any{"uptime": float64(3600)},
			wantOK:    true,
			assertErr: assert.NoError,
		},
		{
			name: "引擎没有下发安全码",
			mock: func(ctrl *gomock.Controller) (*enginemocks.MockService, *registrymocks.MockClient) {
				engineSvc := enginemocks.NewMockService(ctrl)
				engineSvc.EXPECT().Passphrase().Return("salasana", nil)
				engineSvc.EXPECT().Version(gomock.Any()).Return("2.5.0", nil)
				engineSvc.EXPECT().SingleSecurityCode(gomock.Any()).
					Return("", engine.ErrNoSecurityCode)
				client := registrymocks.NewMockClient(ctrl)
				client.EXPECT().PushServerStatus(gomock.Any(), domain.StatusReport{
					MonitoringPassphrase: "salasana",
					ServerVersion:        "2.5.0",
					Status:               map[string]any{"uptime": float64(3600)},
				}).Return(true, nil)
				return engineSvc, client
			},
			status:    map[string]any{"uptime": float64(3600)},
			wantOK:    true,
			assertErr: assert.NoError,
		},
		{
			name: "注册中心拒收",
			mock: func(ctrl *gomock.Controller) (*enginemocks.MockService, *registrymocks.MockClient) {
				engineSvc := enginemocks.NewMockService(ctrl)
				engineSvc.EXPECT().Passphrase().Return("salasana", nil)
				engineSvc.EXPECT().Version(gomock.Any()).Return("2.5.0", nil)
				engineSvc.EXPECT().SingleSecurityCode(gomock.Any()).Return("987654", nil)
				client := registrymocks.NewMockClient(ctrl)
				client.EXPECT().PushServerStatus(gomock.Any(), gomock.Any()).
					Return(false, errors.New("mock: 注册中心返回 500"))
				return engineSvc, client
			},
			status:    map[string]any{},
			wantOK:    false,
			assertErr: assert.Error,
		},
		{
			name: "读不到监控口令",
			mock: func(ctrl *gomock.Controller) (*enginemocks.MockService, *registrymocks.MockClient) {
				engineSvc := enginemocks.NewMockService(ctrl)
				engineSvc.EXPECT().Passphrase().Return("", errors.New("mock: 文件不存在"))
				client := registrymocks.NewMockClient(ctrl)
				return engineSvc, client
			},
			status:    map[string]any{},
			wantOK:    false,
			assertErr: assert.Error,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			engineSvc, client := tc.mock(ctrl)
			svc := NewStatusService(engineSvc, client, newFakeCache())

			ok, err := svc.ForwardEngineStatus(context.Background(), tc.status)
			tc.assertErr(t, err)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestStatusService_LastReport(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engineSvc := enginemocks.NewMockService(ctrl)
	engineSvc.EXPECT().Passphrase().Return("salasana", nil)
	engineSvc.EXPECT().Version(gomock.Any()).Return("2.5.0", nil)
	engineSvc.EXPECT().SingleSecurityCode(gomock.Any()).Return("987654", nil)
	client := registrymocks.NewMockClient(ctrl)
	client.EXPECT().PushServerStatus(gomock.Any(), gomock.Any()).Return(true, nil)
	svc := NewStatusService(engineSvc, client, newFakeCache())

	// 还没上报过
	_, err := svc.LastReport(context.Background())
	assert.Error(t, err)

	_, err = svc.ForwardEngineStatus(context.Background(), map[string]any{"uptime": float64(60)})
	require.NoError(t, err)

	report, err := svc.LastReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.5.0", report.ServerVersion)
	assert.Equal(t, "987654", report.Status["singleSecurityCode"])
}

func TestStatusService_NotifyPackageState(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	engineSvc := enginemocks.NewMockService(ctrl)
	client := registrymocks.NewMockClient(ctrl)
	change := domain.PackageStateChange{
		ExternalID: "pkg-1",
		OldState:   "running",
		NewState:   "stopping",
		ChangedAt:  1700000000000,
	}
	client.EXPECT().PushServerStatus(gomock.Any(), map[string]any{
		"package_state_change": change,
	}).Return(true, nil)
	svc := NewStatusService(engineSvc, client, newFakeCache())

	err := svc.NotifyPackageState(context.Background(), change)
	assert.NoError(t, err)
}
