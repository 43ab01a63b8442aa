package service

import (
	"context"
	"errors"

	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/repository"

	"gorm.io/gorm"
)

// ==================== ProfileService 档案解析 ====================

// ProfileService 档案解析服务
// 三态结果：查到 / 不存在（不是错误）/ 数据访问失败
// 三态必须分开返回，否则故障会被伪装成"没有档案"
type ProfileService struct {
	repo repository.ProfileRepository
}

// NewProfileService 创建档案服务
func NewProfileService(repo repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Resolve 按身份 ID 取档案
// found=false 且 err=nil 表示零行命中；err 非空才是真正的查询失败
func (s *ProfileService) Resolve(ctx context.Context, identityID string) (profile *model.Profile, found bool, err error) {
	if identityID == "" {
		return nil, false, nil
	}

	profile, err = s.repo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return profile, true, nil
}

// CreateVendorProfile 注册链路：给新身份建 vendor 档案
func (s *ProfileService) CreateVendorProfile(ctx context.Context, identityID, fullName, phone string) (*model.Profile, error) {
	profile := &model.Profile{
		BaseModel: model.BaseModel{ID: identityID},
		FullName:  fullName,
		Phone:     phone,
		Role:      model.RoleVendor,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
