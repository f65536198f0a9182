package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"urlshort-platform/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupStore 基于内存数据库初始化一个干净的存储
func setupStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("无法连接到内存数据库: %v", err)
	}
	if err := db.AutoMigrate(&model.ShortLink{}, &model.ClickRecord{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewGormStore(db)
}

func TestPutAndFind(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	link := &model.ShortLink{
		ShortCode:   "promo",
		OriginalURL: "https://example.com",
		CreatedAt:   now,
		ExpiresAt:   now.Add(30 * time.Minute),
	}
	assert.NoError(t, st.Put(ctx, link))

	got, err := st.FindByShortcode(ctx, "promo")
	assert.NoError(t, err)
	assert.Equal(t, "promo", got.ShortCode)
	assert.Equal(t, "https://example.com", got.OriginalURL)
	assert.Equal(t, int64(0), got.ClickCount, "新记录的点击数应当为 0")
	assert.True(t, got.ExpiresAt.Equal(link.ExpiresAt), "过期时间应当原样保存")
}

func TestPut_DuplicateShortcode(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	now := time.Now()
	assert.NoError(t, st.Put(ctx, &model.ShortLink{
		ShortCode: "promo", OriginalURL: "https://a.com", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	err := st.Put(ctx, &model.ShortLink{
		ShortCode: "promo", OriginalURL: "https://b.com", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrShortcodeTaken, "唯一索引兜底应当报告短码冲突")
}

func TestFind_NotFound(t *testing.T) {
	st := setupStore(t)

	_, err := st.FindByShortcode(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordClick(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	now := time.Now()
	link := &model.ShortLink{
		ShortCode: "abc123", OriginalURL: "https://example.com",
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	assert.NoError(t, st.Put(ctx, link))

	// 连续记录三次点击，顺序必须保持
	sources := []string{"browser", "email", "browser"}
	for i, src := range sources {
		err := st.RecordClick(ctx, "abc123", &model.ClickRecord{
			Source:    src,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		assert.NoError(t, err)
	}

	got, err := st.FindByShortcode(ctx, "abc123")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), got.ClickCount, "点击数应当恒等于点击记录条数")
	assert.Len(t, got.Clicks, 3)
	for i, src := range sources {
		assert.Equal(t, src, got.Clicks[i].Source, "点击记录应当按插入顺序排列")
	}
}

func TestRecordClick_NotFound(t *testing.T) {
	st := setupStore(t)

	err := st.RecordClick(context.Background(), "missing", &model.ClickRecord{Source: "browser"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoundTrip(t *testing.T) {
	// 落盘后重新打开，记录集合应当原样读回（顺序与字段值不变）
	path := filepath.Join(t.TempDir(), "roundtrip.db")
	ctx := context.Background()

	open := func() Store {
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
		if err != nil {
			t.Fatalf("无法打开数据库: %v", err)
		}
		if err := db.AutoMigrate(&model.ShortLink{}, &model.ClickRecord{}); err != nil {
			t.Fatalf("数据库迁移失败: %v", err)
		}
		return NewGormStore(db)
	}

	now := time.Now().Truncate(time.Second)
	st := open()
	for i, code := range []string{"first1", "second2", "third3"} {
		assert.NoError(t, st.Put(ctx, &model.ShortLink{
			ShortCode:   code,
			OriginalURL: "https://example.com/" + code,
			CreatedAt:   now,
			ExpiresAt:   now.Add(time.Duration(i+1) * time.Hour),
		}))
	}
	assert.NoError(t, st.RecordClick(ctx, "second2", &model.ClickRecord{Source: "browser", CreatedAt: now}))

	reloaded, err := open().GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, reloaded, 3)
	assert.Equal(t, []string{"first1", "second2", "third3"},
		[]string{reloaded[0].ShortCode, reloaded[1].ShortCode, reloaded[2].ShortCode},
		"插入顺序应当保持")
	assert.Equal(t, "https://example.com/second2", reloaded[1].OriginalURL)
	assert.Equal(t, int64(1), reloaded[1].ClickCount)
	assert.Len(t, reloaded[1].Clicks, 1)
	assert.Equal(t, "browser", reloaded[1].Clicks[0].Source)
}
