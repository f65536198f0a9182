// Package store 提供短链接记录的键值存储
// 存储是显式注入的依赖：窄接口之下可以替换任意后端（MySQL、sqlite 等），
// 调用方不感知具体实现
package store

import (
	"context"
	"errors"

	"urlshort-platform/internal/model"
)

var (
	// ErrNotFound 表示指定短码不存在
	ErrNotFound = errors.New("短码不存在")
	// ErrShortcodeTaken 表示短码与已有记录冲突
	ErrShortcodeTaken = errors.New("短码已被占用")
)

// Store 短链接记录的存储接口
// 记录只增不删，过期记录保留用于历史统计
type Store interface {
	// GetAll 返回全量快照，按插入顺序排列，点击记录按时间顺序预加载
	GetAll(ctx context.Context) ([]model.ShortLink, error)
	// Put 插入新记录；唯一性由调用方预先确认，唯一索引只作为兜底，
	// 冲突时返回 ErrShortcodeTaken
	Put(ctx context.Context, link *model.ShortLink) error
	// FindByShortcode 按短码查找记录，不存在时返回 ErrNotFound
	FindByShortcode(ctx context.Context, code string) (*model.ShortLink, error)
	// RecordClick 追加一条点击记录并递增计数，二者在同一事务内完成，
	// 保证 click_count 恒等于点击记录条数；短码不存在时返回 ErrNotFound
	RecordClick(ctx context.Context, code string, click *model.ClickRecord) error
}
