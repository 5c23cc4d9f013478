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
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Service 是考试引擎一体机的本地接口。
// 引擎跑在考场内网，接口全部走 basic auth，口令和引擎监控共用一个文件。
//
//go:generate mockgen -source=./service.go -destination=../../mocks/service.mock.go -package=enginemocks Service
type Service interface {
	// Version 返回引擎的版本号
	Version(ctx context.Context) (string, error)
	// SingleSecurityCode 返回当前的单场安全码。
	// 引擎偶尔不下发安全码，这时返回 ErrNoSecurityCode。
	SingleSecurityCode(ctx context.Context) (string, error)
	// Passphrase 返回监控口令
	Passphrase() (string, error)
}

var (
	// ErrClientError 客户端错误（4xx），不应重试
	ErrClientError = errors.New("客户端错误")
	// ErrServerError 服务端错误（5xx），应该重试
	ErrServerError = errors.New("服务端错误")
	// ErrNetworkError 网络错误，应该重试
	ErrNetworkError = errors.New("网络错误")
	// ErrNoSecurityCode 引擎没有下发安全码
	ErrNoSecurityCode = errors.New("引擎没有下发安全码")
)

// HTTPClient HTTP 客户端接口，便于测试时 mock
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPEngineService struct {
	baseURL        string
	username       string
	passphraseFile string
	client         HTTPClient
}

var _ Service = (*HTTPEngineService)(nil)

func NewHTTPEngineService(baseURL, username, passphraseFile string, client HTTPClient) *HTTPEngineService {
	return &HTTPEngineService{
		baseURL:        baseURL,
		username:       username,
		passphraseFile: passphraseFile,
		client:         client,
	}
}

func (s *HTTPEngineService) Version(ctx context.Context) (string, error) {
	var res struct {
		Version string `json:"version"`
	}
	if err := s.get(ctx, "/api/version", &res); err != nil {
		return "", err
	}
	return res.Version, nil
}

func (s *HTTPEngineService) SingleSecurityCode(ctx context.Context) (string, error) {
	var res struct {
		SecurityCode string `json:"securityCode"`
	}
	if err := s.get(ctx, "/api/single-security-code", &res); err != nil {
		return "", err
	}
	if res.SecurityCode == "" {
		return "", ErrNoSecurityCode
	}
	return res.SecurityCode, nil
}

// Passphrase 读口令文件的第一行
func (s *HTTPEngineService) Passphrase() (string, error) {
	f, err := os.Open(s.passphraseFile)
	if err != nil {
		return "", fmt.Errorf("打开口令文件失败: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("读取口令文件失败: %w", err)
		}
		return "", errors.New("口令文件是空的")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func (s *HTTPEngineService) get(ctx context.Context, path string, res any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: 创建请求失败: %v", ErrClientError, err)
	}
	passphrase, err := s.Passphrase()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClientError, err)
	}
	req.SetBasicAuth(s.username, passphrase)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: 请求失败: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: 引擎返回 %d", ErrServerError, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%w: 引擎返回 %d", ErrClientError, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
		return fmt.Errorf("%w: 解析引擎响应失败: %v", ErrClientError, err)
	}
	return nil
}
