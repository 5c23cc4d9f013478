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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Client 是考试注册中心后端的客户端。
// 所有请求都带上 domain/hostname/id 三个参数，注册中心靠它们识别考场服务器。
//
//go:generate mockgen -source=./client.go -destination=../../mocks/client.mock.go -package=registrymocks Client
type Client interface {
	// PushServerStatus 上报服务器状态，返回注册中心是否接受
	PushServerStatus(ctx context.Context, report any) (bool, error)
}

var (
	// ErrClientError 客户端错误（4xx），不应重试
	ErrClientError = errors.New("客户端错误")
	// ErrServerError 服务端错误（5xx），应该重试
	ErrServerError = errors.New("服务端错误")
	// ErrNetworkError 网络错误，应该重试
	ErrNetworkError = errors.New("网络错误")
)

// HTTPClient HTTP 客户端接口，便于测试时 mock
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ServerIdentity 是考场服务器在注册中心里的身份
type ServerIdentity struct {
	Domain   string `yaml:"domain"`
	Hostname string `yaml:"hostname"`
	ID       string `yaml:"id"`
}

type HTTPRegistryClient struct {
	baseURL  string
	identity ServerIdentity
	username string
	password string
	client   HTTPClient
}

var _ Client = (*HTTPRegistryClient)(nil)

func NewHTTPRegistryClient(baseURL string, identity ServerIdentity,
	username, password string, client HTTPClient) *HTTPRegistryClient {
	return &HTTPRegistryClient{
		baseURL:  baseURL,
		identity: identity,
		username: username,
		password: password,
		client:   client,
	}
}

func (c *HTTPRegistryClient) PushServerStatus(ctx context.Context, report any) (bool, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return false, fmt.Errorf("%w: 序列化状态报文失败: %v", ErrClientError, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/v1/servers/status_update"), bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("%w: 创建请求失败: %v", ErrClientError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: 请求失败: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return false, fmt.Errorf("%w: 注册中心返回 %d", ErrServerError, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return false, fmt.Errorf("%w: 注册中心返回 %d", ErrClientError, resp.StatusCode)
	}
	return true, nil
}

func (c *HTTPRegistryClient) endpoint(path string) string {
	params := url.Values{}
	params.Set("domain", c.identity.Domain)
	params.Set("hostname", c.identity.Hostname)
	params.Set("id", c.identity.ID)
	return c.baseURL + path + "?" + params.Encode()
}
