package task

import (
	"context"
	"time"

	"mall_admin_v1_202608/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// BannerSweepTask 横幅有效期清扫
// 投放窗口结束的横幅由这里兜底下架；列表/门户接口本身也按窗口过滤，
// 清扫只是让库里的 is_active 与实际投放状态对齐
type BannerSweepTask struct {
	repo repository.BannerRepository
	cron *cron.Cron
	log  *logrus.Entry
}

// NewBannerSweepTask 创建清扫任务
func NewBannerSweepTask(repo repository.BannerRepository) *BannerSweepTask {
	return &BannerSweepTask{
		repo: repo,
		cron: cron.New(),
		log:  logrus.WithField("task", "banner_sweep"),
	}
}

// Start 启动定时任务
func (t *BannerSweepTask) Start() {
	// 首次执行
	go t.sweep()

	// 每小时整点清扫一次
	_, err := t.cron.AddFunc("0 * * * *", t.sweep)
	if err != nil {
		t.log.WithError(err).Fatal("无法启动横幅清扫任务")
	}

	t.cron.Start()
	t.log.Info("横幅清扫任务已启动 (每小时一次)")
}

// Stop 停止任务
func (t *BannerSweepTask) Stop() {
	t.cron.Stop()
}

func (t *BannerSweepTask) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	affected, err := t.repo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		t.log.WithError(err).Error("过期横幅清扫失败")
		return
	}
	if affected > 0 {
		t.log.WithField("count", affected).Info("已下架过期横幅")
	}
}
