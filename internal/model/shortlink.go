package model

import (
	"time"
)

// ShortLink 短链接记录模型
// ShortCode 是业务主键：全库唯一，1-16 位字母数字
type ShortLink struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	ShortCode   string        `gorm:"size:16;uniqueIndex;not null" json:"short_code"`
	OriginalURL string        `gorm:"type:text;not null" json:"original_url"`
	ClickCount  int64         `gorm:"default:0" json:"click_count"`
	CreatedAt   time.Time     `json:"created_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Clicks      []ClickRecord `gorm:"foreignKey:ShortLinkID" json:"clicks,omitempty"`
}

// TableName 指定表名
func (ShortLink) TableName() string {
	return "short_links"
}

// Expired 判断记录在 now 时刻是否已过期
// 边界约定：now 恰好等于 ExpiresAt 时视为已过期，只有 now < ExpiresAt 才有效
func (l *ShortLink) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
