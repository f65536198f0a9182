// Package telemetry 实现对外部日志收集端的上报
// 传输层与应用层的任何失败都被就地吸收，调用方永远观察不到异常，
// 上报结果也不得影响被记录操作本身的结果
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// 合法的字段取值，非法输入属于编程错误，在发出请求前快速失败
var (
	validStacks = map[string]struct{}{
		"frontend": {}, "backend": {},
	}
	validLevels = map[string]struct{}{
		"debug": {}, "info": {}, "warn": {}, "error": {}, "fatal": {},
	}
	validPackages = map[string]struct{}{
		"api": {}, "component": {}, "hook": {}, "page": {}, "state": {},
		"style": {}, "auth": {}, "config": {}, "middleware": {}, "utils": {},
	}
)

// Event 一条上报事件的请求体
type Event struct {
	Stack   string `json:"stack"`
	Level   string `json:"level"`
	Package string `json:"package"`
	Message string `json:"message"`
}

// Result 一次上报的结果
// Error 为 true 时 Message 描述失败原因；失败已被吸收，不会再向上传播
type Result struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Client 日志收集端客户端
type Client struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewClient 创建上报客户端，token 为空时不携带认证头
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

// Log 上报一条事件
// 字段校验失败返回 error 且不发起请求；请求一旦发出，
// 任何失败都转化为 Result{Error: true}，error 恒为 nil
func (c *Client) Log(ctx context.Context, stack, level, pkg, message string) (Result, error) {
	if _, ok := validStacks[stack]; !ok {
		return Result{}, fmt.Errorf("非法的 stack 取值: %q", stack)
	}
	if _, ok := validLevels[level]; !ok {
		return Result{}, fmt.Errorf("非法的 level 取值: %q", level)
	}
	if _, ok := validPackages[pkg]; !ok {
		return Result{}, fmt.Errorf("非法的 package 取值: %q", pkg)
	}
	if strings.TrimSpace(message) == "" {
		return Result{}, fmt.Errorf("message 不能为空")
	}

	body, err := json.Marshal(Event{Stack: stack, Level: level, Package: pkg, Message: message})
	if err != nil {
		return Result{Error: true, Message: err.Error()}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Error: true, Message: err.Error()}, nil
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Error: true, Message: err.Error()}, nil
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Error: true, Message: fmt.Sprintf("收集端返回状态 %d", resp.StatusCode)}, nil
	}
	return Result{Message: string(payload)}, nil
}
