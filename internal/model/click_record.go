package model

import (
	"time"
)

// ClickRecord 一次成功跳转的点击记录
// 只允许追加，插入顺序即时间顺序；CreatedAt 不早于所属短链接的创建时间
type ClickRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ShortLinkID uint      `gorm:"not null;index" json:"short_link_id"`
	Source      string    `gorm:"size:20" json:"source"`
	Country     string    `gorm:"size:100" json:"country,omitempty"`
	Region      string    `gorm:"size:100" json:"region,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ClickRecord) TableName() string {
	return "click_records"
}
