// Package shortener 实现批量提交：校验、短码选定与落库
package shortener

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"urlshort-platform/internal/model"
	"urlshort-platform/internal/shortcode"
	"urlshort-platform/internal/store"
	"urlshort-platform/internal/validate"

	"go.uber.org/zap"
)

// DefaultValidityMinutes 是未填写有效期时的默认值（分钟）
const DefaultValidityMinutes = 30

// Submission 一行提交输入，字段均为调用方提供的原始字符串
type Submission struct {
	URL       string `json:"url"`
	Validity  string `json:"validity"`
	Shortcode string `json:"shortcode"`
}

// RowResult 一行提交的结果
// 跳过的空行 Record 与 Errs 均为空；失败行 Errs 非空；成功行携带已落库的记录
type RowResult struct {
	Record *model.ShortLink
	Errs   []error
}

// Service 批量提交服务
type Service struct {
	store     store.Store
	allocator *shortcode.Allocator
	logger    *zap.SugaredLogger

	// 串行化批次：唯一性检查基于批次开始时的快照，
	// 并发提交必须排队，否则两个批次可能各自通过检查后写入同一短码
	mu sync.Mutex
}

// NewService 创建提交服务
func NewService(st store.Store, allocator *shortcode.Allocator, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:     st,
		allocator: allocator,
		logger:    logger.Named("shortener"),
	}
}

// Submit 处理一批提交
// 逐行收集校验错误，单行失败不影响其余行；全部行无效时不落库任何记录。
// 批次内选定的短码（自定义或分配的）立即并入排除集，
// 同批两行即使都留空短码也不会互相冲突。
func (s *Service) Submit(ctx context.Context, rows []Submission) ([]RowResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.snapshotCodes(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]RowResult, len(rows))
	now := time.Now()

	for i, row := range rows {
		url := strings.TrimSpace(row.URL)
		validity := strings.TrimSpace(row.Validity)
		code := strings.TrimSpace(row.Shortcode)

		// 整行留空视为未填写，直接跳过
		if url == "" && validity == "" && code == "" {
			continue
		}

		var errs []error

		if url == "" {
			errs = append(errs, validate.ErrInvalidURL)
		} else if err := validate.URL(url); err != nil {
			errs = append(errs, err)
		}

		minutes := DefaultValidityMinutes
		if validity != "" {
			n, err := validate.ValidityMinutes(validity)
			if err != nil {
				errs = append(errs, err)
			} else {
				minutes = n
			}
		}

		if code != "" {
			if err := validate.Shortcode(code); err != nil {
				errs = append(errs, err)
			} else if _, taken := existing[code]; taken {
				errs = append(errs, store.ErrShortcodeTaken)
			}
		}

		if len(errs) > 0 {
			results[i] = RowResult{Errs: errs}
			continue
		}

		if code == "" {
			code, err = s.allocator.Allocate(existing)
			if err != nil {
				// 分配耗尽属于致命异常，中止整批
				return nil, err
			}
		}
		existing[code] = struct{}{}

		link := &model.ShortLink{
			ShortCode:   code,
			OriginalURL: url,
			CreatedAt:   now,
			ExpiresAt:   now.Add(time.Duration(minutes) * time.Minute),
		}
		if err := s.store.Put(ctx, link); err != nil {
			if errors.Is(err, store.ErrShortcodeTaken) {
				// 唯一索引兜底命中，按行上报
				results[i] = RowResult{Errs: []error{err}}
				continue
			}
			return nil, err
		}

		s.logger.Infof("已创建短链接 /%s -> %s，有效期 %d 分钟", code, url, minutes)
		results[i] = RowResult{Record: link}
	}

	return results, nil
}

// snapshotCodes 取批次开始时的存量短码集合
func (s *Service) snapshotCodes(ctx context.Context) (map[string]struct{}, error) {
	links, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]struct{}, len(links))
	for _, l := range links {
		codes[l.ShortCode] = struct{}{}
	}
	return codes, nil
}
