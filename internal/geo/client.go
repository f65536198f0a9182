// Package geo 提供尽力而为的 IP 地理位置查询
// 查询失败、超时或未配置时一律静默降级，绝不阻塞或影响跳转
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Location 粗粒度的地理位置信息
type Location struct {
	Country string `json:"country_name"`
	Region  string `json:"region"`
}

// Client 地理位置查询客户端
type Client struct {
	endpoint string
	client   *http.Client
	logger   *zap.SugaredLogger
}

// NewClient 创建查询客户端
// timeout 限定单次查询的总耗时，慢响应的服务商不能拖住跳转
func NewClient(endpoint string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.Named("geo"),
	}
}

// Lookup 查询 ip 的国家与地区
// 第二个返回值表示查询是否成功；失败时返回零值 Location
func (c *Client) Lookup(ctx context.Context, ip string) (Location, bool) {
	url := fmt.Sprintf("%s/%s/json/", c.endpoint, ip)
	if ip == "" {
		url = c.endpoint + "/json/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debugf("地理位置查询失败: %v", err)
		return Location{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debugf("地理位置服务返回非 200 状态: %s", resp.Status)
		return Location{}, false
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		c.logger.Debugf("地理位置响应解析失败: %v", err)
		return Location{}, false
	}
	return loc, true
}
