// Package analytics 提供只读的统计投影，不做任何变更，也不缓存快照
package analytics

import (
	"context"
	"time"

	"urlshort-platform/internal/model"
	"urlshort-platform/internal/store"
)

// LinkStats 单条短链接的统计视图
type LinkStats struct {
	ShortCode   string              `json:"short_code"`
	OriginalURL string              `json:"original_url"`
	CreatedAt   time.Time           `json:"created_at"`
	ExpiresAt   time.Time           `json:"expires_at"`
	ClickCount  int64               `json:"click_count"`
	Clicks      []model.ClickRecord `json:"clicks"`
}

// Overview 全局汇总
type Overview struct {
	TotalLinks  int64 `json:"total_links"`
	TotalClicks int64 `json:"total_clicks"`
	ActiveLinks int64 `json:"active_links"`
}

// View 统计视图，基于存储的单次快照投影
type View struct {
	store store.Store
}

// NewView 创建统计视图
func NewView(st store.Store) *View {
	return &View{store: st}
}

// Links 返回每条记录的统计行，点击按时间顺序排列
func (v *View) Links(ctx context.Context) ([]LinkStats, error) {
	links, err := v.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]LinkStats, 0, len(links))
	for _, l := range links {
		clicks := l.Clicks
		if clicks == nil {
			clicks = []model.ClickRecord{}
		}
		stats = append(stats, LinkStats{
			ShortCode:   l.ShortCode,
			OriginalURL: l.OriginalURL,
			CreatedAt:   l.CreatedAt,
			ExpiresAt:   l.ExpiresAt,
			ClickCount:  l.ClickCount,
			Clicks:      clicks,
		})
	}
	return stats, nil
}

// Summary 返回全局汇总：总链接数、总点击数与未过期链接数
func (v *View) Summary(ctx context.Context) (Overview, error) {
	links, err := v.store.GetAll(ctx)
	if err != nil {
		return Overview{}, err
	}
	now := time.Now()
	var o Overview
	o.TotalLinks = int64(len(links))
	for i := range links {
		o.TotalClicks += links[i].ClickCount
		if !links[i].Expired(now) {
			o.ActiveLinks++
		}
	}
	return o, nil
}
