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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePassphraseFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passphrase")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newEngineServer(t *testing.T, securityCode string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "valvoja" || pass != "kuulas-ol-kuu" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/version":
			_, _ = w.Write([]byte(`{"version":"2.5.0"}`))
		case "/api/single-security-code":
			_, _ = w.Write([]byte(`{"securityCode":"` + securityCode + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestHTTPEngineService_Version(t *testing.T) {
	t.Parallel()
	srv := newEngineServer(t, "1234")
	defer srv.Close()
	path := writePassphraseFile(t, "kuulas-ol-kuu\n")
	svc := NewHTTPEngineService(srv.URL, "valvoja", path, srv.Client())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	version, err := svc.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.5.0", version)
}

func TestHTTPEngineService_SingleSecurityCode(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		securityCode string
		wantErr      error
		wantCode     string
	}{
		{name: "正常下发", securityCode: "987654", wantCode: "987654"},
		{name: "没有下发", securityCode: "", wantErr: ErrNoSecurityCode},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := newEngineServer(t, tc.securityCode)
			defer srv.Close()
			path := writePassphraseFile(t, "kuulas-ol-kuu\n")
			svc := NewHTTPEngineService(srv.URL, "valvoja", path, srv.Client())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			code, err := svc.SingleSecurityCode(ctx)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCode, code)
		})
	}
}

func TestHTTPEngineService_BadCredentials(t *testing.T) {
	t.Parallel()
	srv := newEngineServer(t, "1234")
	defer srv.Close()
	path := writePassphraseFile(t, "wrong-passphrase\n")
	svc := NewHTTPEngineService(srv.URL, "valvoja", path, srv.Client())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := svc.Version(ctx)
	assert.ErrorIs(t, err, ErrClientError)
}

func TestHTTPEngineService_Passphrase(t *testing.T) {
	t.Parallel()
	t.Run("取第一行并去掉空白", func(t *testing.T) {
		t.Parallel()
		path := writePassphraseFile(t, "salasana \nsecond line\n")
		svc := NewHTTPEngineService("http://unused", "valvoja", path, http.DefaultClient)
		passphrase, err := svc.Passphrase()
		require.NoError(t, err)
		assert.Equal(t, "salasana", passphrase)
	})
	t.Run("文件不存在", func(t *testing.T) {
		t.Parallel()
		svc := NewHTTPEngineService("http://unused", "valvoja", "/no/such/file", http.DefaultClient)
		_, err := svc.Passphrase()
		assert.Error(t, err)
	})
}
