package store

import (
	"context"
	"errors"

	"urlshort-platform/internal/model"

	"gorm.io/gorm"
)

// gormStore 基于 gorm 的 Store 实现
type gormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 存储实例
// 需要在 gorm.Config 中开启 TranslateError，唯一索引冲突才能被识别
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) GetAll(ctx context.Context) ([]model.ShortLink, error) {
	var links []model.ShortLink
	err := s.db.WithContext(ctx).
		Preload("Clicks", func(db *gorm.DB) *gorm.DB {
			return db.Order("click_records.id ASC")
		}).
		Order("id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *gormStore) Put(ctx context.Context, link *model.ShortLink) error {
	err := s.db.WithContext(ctx).Create(link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrShortcodeTaken
	}
	return err
}

func (s *gormStore) FindByShortcode(ctx context.Context, code string) (*model.ShortLink, error) {
	var link model.ShortLink
	err := s.db.WithContext(ctx).
		Preload("Clicks", func(db *gorm.DB) *gorm.DB {
			return db.Order("click_records.id ASC")
		}).
		Where("short_code = ?", code).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *gormStore) RecordClick(ctx context.Context, code string, click *model.ClickRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link model.ShortLink
		if err := tx.Where("short_code = ?", code).First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		click.ShortLinkID = link.ID
		if err := tx.Create(click).Error; err != nil {
			return err
		}

		return tx.Model(&model.ShortLink{}).
			Where("id = ?", link.ID).
			Update("click_count", gorm.Expr("click_count + 1")).Error
	})
}
