// Package resolver 实现短码解析状态机
// 一次解析从进行中的调用开始，终止于四个终态之一：
// 跳转、短码不存在、已过期、请求错误
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"urlshort-platform/internal/geo"
	"urlshort-platform/internal/model"
	"urlshort-platform/internal/store"
	"urlshort-platform/internal/telemetry"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// State 解析的终态
type State int

const (
	// StateRedirect 解析成功，携带目标地址；点击已记录
	StateRedirect State = iota
	// StateNotFound 短码不存在
	StateNotFound
	// StateExpired 记录已过期，不记录点击
	StateExpired
	// StateError 请求本身有问题（短码缺失）或解析被取消
	StateError
)

func (s State) String() string {
	switch s {
	case StateRedirect:
		return "redirect"
	case StateNotFound:
		return "notfound"
	case StateExpired:
		return "expired"
	default:
		return "error"
	}
}

// Resolution 一次解析的结果
// 跳转本身（操纵用户代理）是调用方的职责，解析器只返回目的地
type Resolution struct {
	State     State
	TargetURL string
	Message   string
}

// cachedLink 写入缓存的跳转信息，带上过期时间以便命中时仍能做过期判定
type cachedLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

const cacheKeyPrefix = "shortlink:"

// Resolver 短码解析器
// geo、telemetry、redis 均为可选依赖，传 nil 时对应能力静默关闭
type Resolver struct {
	store         store.Store
	geo           *geo.Client
	telemetry     *telemetry.Client
	redis         *redis.Client
	logger        *zap.SugaredLogger
	redirectDelay time.Duration
}

// New 创建解析器
// redirectDelay 为跳转前的固定停顿，0 表示不停顿；
// 停顿期间 ctx 被取消会抑制这次待发的跳转
func New(st store.Store, geoClient *geo.Client, tele *telemetry.Client, rdb *redis.Client, logger *zap.SugaredLogger, redirectDelay time.Duration) *Resolver {
	return &Resolver{
		store:         st,
		geo:           geoClient,
		telemetry:     tele,
		redis:         rdb,
		logger:        logger.Named("resolver"),
		redirectDelay: redirectDelay,
	}
}

// Resolve 解析 code 并在成功时记录一次点击
// clientIP 仅用于地理位置查询，referrer 用于点击来源分类
func (r *Resolver) Resolve(ctx context.Context, code, clientIP, referrer string) Resolution {
	if strings.TrimSpace(code) == "" {
		r.emit("error", "跳转失败: 未提供短码")
		return Resolution{State: StateError, Message: "未提供短码"}
	}

	now := time.Now()

	// 缓存快路径：命中后仍然要做过期判定并经由存储记录点击，
	// 缓存只省掉一次查库
	if cached, ok := r.cacheGet(ctx, code); ok {
		if !now.Before(cached.ExpiresAt) {
			r.logger.Warnf("跳转失败: 短码 %s 已过期", code)
			r.emit("warn", "跳转失败: 短码 "+code+" 已过期")
			return Resolution{State: StateExpired, Message: "该链接已过期"}
		}
		click := r.buildClick(ctx, now, clientIP, referrer)
		if err := r.store.RecordClick(ctx, code, click); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// 缓存残留脏数据，清掉后按不存在处理
				r.cacheDel(ctx, code)
				r.logger.Warnf("跳转失败: 短码 %s 不存在", code)
				r.emit("warn", "跳转失败: 短码 "+code+" 不存在")
				return Resolution{State: StateNotFound, Message: "短码不存在"}
			}
			r.logger.Errorf("记录点击失败: %v", err)
		}
		return r.finishRedirect(ctx, code, cached.URL)
	}

	link, err := r.store.FindByShortcode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		r.logger.Warnf("跳转失败: 短码 %s 不存在", code)
		r.emit("warn", "跳转失败: 短码 "+code+" 不存在")
		return Resolution{State: StateNotFound, Message: "短码不存在"}
	}
	if err != nil {
		r.logger.Errorf("查询短码 %s 失败: %v", code, err)
		r.emit("error", "跳转失败: 查询短码 "+code+" 出错")
		return Resolution{State: StateError, Message: "查询短码失败"}
	}

	if link.Expired(now) {
		r.logger.Warnf("跳转失败: 短码 %s 已过期", code)
		r.emit("warn", "跳转失败: 短码 "+code+" 已过期")
		return Resolution{State: StateExpired, Message: "该链接已过期"}
	}

	click := r.buildClick(ctx, now, clientIP, referrer)
	if err := r.store.RecordClick(ctx, code, click); err != nil {
		// 点击记录失败不阻断跳转，但要留痕
		r.logger.Errorf("记录点击失败: %v", err)
	}

	r.cacheSet(ctx, code, link)
	return r.finishRedirect(ctx, code, link.OriginalURL)
}

// buildClick 构造一条点击记录，地理位置查询尽力而为
func (r *Resolver) buildClick(ctx context.Context, now time.Time, clientIP, referrer string) *model.ClickRecord {
	click := &model.ClickRecord{
		Source:    sourceFromReferrer(referrer),
		CreatedAt: now,
	}
	if r.geo != nil {
		if loc, ok := r.geo.Lookup(ctx, clientIP); ok {
			click.Country = loc.Country
			click.Region = loc.Region
		}
	}
	return click
}

// finishRedirect 完成跳转终态：上报遥测，按配置停顿后返回目的地
// 停顿是可取消的定时器，ctx 被取消时抑制这次跳转（点击在此之前已经记录）
func (r *Resolver) finishRedirect(ctx context.Context, code, target string) Resolution {
	r.logger.Infof("已跳转 /%s -> %s", code, target)
	r.emit("info", "已跳转 /"+code+" -> "+target)

	if r.redirectDelay > 0 {
		timer := time.NewTimer(r.redirectDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Resolution{State: StateError, Message: "跳转已取消"}
		}
	}
	return Resolution{State: StateRedirect, TargetURL: target}
}

// sourceFromReferrer 按来源页粗分类：带 mail 字样的算邮件，其余算浏览器
func sourceFromReferrer(referrer string) string {
	if referrer != "" && strings.Contains(referrer, "mail") {
		return "email"
	}
	return "browser"
}

// emit 异步上报一条遥测事件，结果不影响解析
func (r *Resolver) emit(level, message string) {
	if r.telemetry == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if _, err := r.telemetry.Log(ctx, "backend", level, "api", message); err != nil {
			r.logger.Warnf("遥测事件构造失败: %v", err)
		}
	}()
}

func (r *Resolver) cacheGet(ctx context.Context, code string) (cachedLink, bool) {
	if r.redis == nil {
		return cachedLink{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	raw, err := r.redis.Get(ctx, cacheKeyPrefix+code).Result()
	if err != nil {
		return cachedLink{}, false
	}
	var cached cachedLink
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return cachedLink{}, false
	}
	return cached, true
}

func (r *Resolver) cacheSet(ctx context.Context, code string, link *model.ShortLink) {
	if r.redis == nil {
		return
	}
	ttl := time.Until(link.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if ttl > 24*time.Hour {
		ttl = 24 * time.Hour
	}
	raw, err := json.Marshal(cachedLink{URL: link.OriginalURL, ExpiresAt: link.ExpiresAt})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	r.redis.Set(ctx, cacheKeyPrefix+code, raw, ttl)
}

func (r *Resolver) cacheDel(ctx context.Context, code string) {
	if r.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	r.redis.Del(ctx, cacheKeyPrefix+code)
}
