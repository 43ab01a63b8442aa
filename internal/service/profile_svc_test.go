package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/repository"
)

func setupProfileSvc(t *testing.T) (*ProfileService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")
	require.NoError(t, db.AutoMigrate(&model.Profile{}), "数据库迁移失败")

	return NewProfileService(repository.NewProfileRepository(db)), db
}

func TestProfileSvc_Resolve_Found(t *testing.T) {
	svc, db := setupProfileSvc(t)
	ctx := context.Background()

	seed := model.Profile{
		BaseModel: model.BaseModel{ID: "11111111-1111-1111-1111-111111111111"},
		FullName:  "李四",
		Role:      model.RoleAdmin,
	}
	require.NoError(t, db.Create(&seed).Error)

	profile, found, err := svc.Resolve(ctx, seed.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, profile.IsAdmin())
	assert.False(t, profile.IsVendor())
}

func TestProfileSvc_Resolve_NotFoundIsNotError(t *testing.T) {
	svc, _ := setupProfileSvc(t)

	profile, found, err := svc.Resolve(context.Background(), "22222222-2222-2222-2222-222222222222")
	// 零行命中是业务常态，不是错误
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, profile)
}

func TestProfileSvc_Resolve_EmptyIdentity(t *testing.T) {
	svc, _ := setupProfileSvc(t)

	profile, found, err := svc.Resolve(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, profile)
}

func TestProfileSvc_Resolve_DataAccessError(t *testing.T) {
	svc, db := setupProfileSvc(t)

	// 拆掉表模拟真正的查询故障，三态里必须走 err 分支
	require.NoError(t, db.Migrator().DropTable(&model.Profile{}))

	profile, found, err := svc.Resolve(context.Background(), "33333333-3333-3333-3333-333333333333")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Nil(t, profile)
}

func TestProfileSvc_CreateVendorProfile(t *testing.T) {
	svc, _ := setupProfileSvc(t)
	ctx := context.Background()

	profile, err := svc.CreateVendorProfile(ctx, "44444444-4444-4444-4444-444444444444", "王五", "13800000000")
	require.NoError(t, err)
	assert.True(t, profile.IsVendor())

	got, found, err := svc.Resolve(ctx, profile.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "王五", got.FullName)
}
