package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	logger, _ := zap.NewDevelopment()
	return logger.Sugar()
}

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/198.51.100.9/json/", req.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"country_name": "Japan",
			"region":       "Tokyo",
			"city":         "Shibuya",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	loc, ok := client.Lookup(context.Background(), "198.51.100.9")
	assert.True(t, ok)
	assert.Equal(t, "Japan", loc.Country)
	assert.Equal(t, "Tokyo", loc.Region)
}

func TestLookup_EmptyIPUsesCallerAddress(t *testing.T) {
	// 不带 IP 时退化为查询调用方自己的出口地址
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/json/", req.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"country_name": "Local"})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	loc, ok := client.Lookup(context.Background(), "")
	assert.True(t, ok)
	assert.Equal(t, "Local", loc.Country)
}

func TestLookup_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	loc, ok := client.Lookup(context.Background(), "198.51.100.9")
	assert.False(t, ok, "非 200 状态应当按失败处理")
	assert.Empty(t, loc.Country)
}

func TestLookup_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	_, ok := client.Lookup(context.Background(), "198.51.100.9")
	assert.False(t, ok, "响应解析失败应当按失败处理")
}

func TestLookup_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second, testLogger())
	_, ok := client.Lookup(context.Background(), "198.51.100.9")
	assert.False(t, ok, "服务不可达应当按失败处理")
}

func TestLookup_Timeout(t *testing.T) {
	// 慢响应受客户端超时约束，不能拖住调用方
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond, testLogger())
	start := time.Now()
	_, ok := client.Lookup(context.Background(), "198.51.100.9")
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 250*time.Millisecond, "查询应当在超时后立刻放弃")
}
