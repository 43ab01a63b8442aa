package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mall_admin_v1_202608/internal/model"
)

func setupBannerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Banner{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

func TestBannerRepo_Create_AssignsNextPosition(t *testing.T) {
	db := setupBannerTestDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()

	// 空表时第一条 position 应为 1
	first := &model.Banner{Title: "首页大促", LinkType: model.LinkTypeExternal, LinkURL: "https://example.com"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.Position != 1 {
		t.Errorf("空表创建 position = %d, 期望 1", first.Position)
	}
	if first.ID == "" {
		t.Error("ID 应该被自动分配")
	}

	// 后续创建 position 应为 max+1
	second := &model.Banner{Title: "新品上架", LinkType: model.LinkTypeCategory, LinkID: "c4ca4238-0000-0000-0000-000000000001"}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.Position != 2 {
		t.Errorf("第二条 position = %d, 期望 2", second.Position)
	}

	// 手动拉开空档后仍按 max+1（不填洞）
	if err := repo.UpdatePosition(ctx, second.ID, 10); err != nil {
		t.Fatalf("UpdatePosition() error = %v", err)
	}
	third := &model.Banner{Title: "清仓专区", LinkType: model.LinkTypeExternal, LinkURL: "https://example.com/sale"}
	if err := repo.Create(ctx, third); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if third.Position != 11 {
		t.Errorf("第三条 position = %d, 期望 11", third.Position)
	}
}

func TestBannerRepo_List_OrderedByPosition(t *testing.T) {
	db := setupBannerTestDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()

	titles := []string{"A", "B", "C"}
	for _, title := range titles {
		if err := repo.Create(ctx, &model.Banner{Title: title, LinkType: model.LinkTypeExternal, LinkURL: "https://example.com"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	// 倒置顺序：A=3, C=1
	banners, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if err := repo.UpdatePosition(ctx, banners[0].ID, 3); err != nil {
		t.Fatalf("UpdatePosition() error = %v", err)
	}
	if err := repo.UpdatePosition(ctx, banners[2].ID, 1); err != nil {
		t.Fatalf("UpdatePosition() error = %v", err)
	}

	banners, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	got := []string{banners[0].Title, banners[1].Title, banners[2].Title}
	want := []string{"C", "B", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List 排序错误: got %v, want %v", got, want)
			break
		}
	}
}

func TestBannerRepo_UpdateFields_StampsUpdatedAt(t *testing.T) {
	db := setupBannerTestDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()

	banner := &model.Banner{Title: "旧标题", LinkType: model.LinkTypeExternal, LinkURL: "https://example.com"}
	if err := repo.Create(ctx, banner); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if err := repo.UpdateFields(ctx, banner.ID, map[string]interface{}{"title": "X"}); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	updated, err := repo.GetByID(ctx, banner.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if updated.Title != "X" {
		t.Errorf("title = %s, 期望 X", updated.Title)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("updated_at (%v) 应晚于 created_at (%v)", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestBannerRepo_UpdateFields_NotFound(t *testing.T) {
	db := setupBannerTestDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()

	err := repo.UpdateFields(ctx, "00000000-0000-0000-0000-000000000000", map[string]interface{}{"title": "X"})
	if err != gorm.ErrRecordNotFound {
		t.Errorf("更新不存在的行应返回 ErrRecordNotFound, got %v", err)
	}
}

func TestBannerRepo_DeactivateExpired(t *testing.T) {
	db := setupBannerTestDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()

	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	expired := &model.Banner{Title: "过期", LinkType: model.LinkTypeExternal, LinkURL: "https://example.com", IsActive: true, EndsAt: &past}
	running := &model.Banner{Title: "在投", LinkType: model.LinkTypeExternal, LinkURL: "https://example.com", IsActive: true, EndsAt: &future}
	forever := &model.Banner{Title: "长期", LinkType: model.LinkTypeExternal, LinkURL: "https://example.com", IsActive: true}
	for _, b := range []*model.Banner{expired, running, forever} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	affected, err := repo.DeactivateExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeactivateExpired() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("影响行数 = %d, 期望 1", affected)
	}

	got, err := repo.GetByID(ctx, expired.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.IsActive {
		t.Error("过期横幅应被停用")
	}
}
