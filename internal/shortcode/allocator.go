package shortcode

import (
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
)

const (
	// Charset 包含用于生成短码的所有字符
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultLength 是生成的短码的默认长度
	DefaultLength = 6
	// MaxAttempts 是防御性的重试上限
	// 62^6 的码空间远大于实际存量，正常情况下期望重试次数约为 1；
	// 上限只用来兜底损坏或对抗性的存量集合，避免死循环
	MaxAttempts = 100000
)

// ErrAllocationExhausted 表示在重试上限内未找到空闲短码
// 实践中不可达，一旦出现应当作致命异常处理
var ErrAllocationExhausted = errors.New("短码分配耗尽")

// Allocator 负责生成不与存量冲突的随机短码
type Allocator struct {
	length int
	logger *zap.SugaredLogger
}

// NewAllocator 创建短码分配器，length <= 0 时使用默认长度
func NewAllocator(length int, logger *zap.SugaredLogger) *Allocator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Allocator{
		length: length,
		logger: logger.Named("shortcode_allocator"),
	}
}

// Allocate 生成一个不在 existing 集合中的短码
// 同一批次内新选定的短码（无论自定义还是分配的）由调用方负责
// 先并入 existing，再为下一行分配
func (a *Allocator) Allocate(existing map[string]struct{}) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		code, err := a.randomString(a.length)
		if err != nil {
			return "", err
		}
		if _, taken := existing[code]; !taken {
			return code, nil
		}
	}
	a.logger.Errorf("已尝试 %d 次仍未找到空闲短码，存量集合大小 %d", MaxAttempts, len(existing))
	return "", ErrAllocationExhausted
}

// randomString 使用加密安全的随机数生成器生成一个给定长度的字符串
func (a *Allocator) randomString(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(Charset))))
		if err != nil {
			return "", err
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}
