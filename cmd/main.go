package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mall_admin_v1_202608/internal/config"
	"mall_admin_v1_202608/internal/controller"
	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/repository"
	"mall_admin_v1_202608/internal/router"
	"mall_admin_v1_202608/internal/service"
	"mall_admin_v1_202608/internal/task"
	"mall_admin_v1_202608/pkg/authclient"
	"mall_admin_v1_202608/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("配置加载失败: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.AuthClient, deps.Services.Profile, deps.Controllers)

	// 6. 启动服务
	startServer(cfg, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	AuthClient  *authclient.Client
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Banner  repository.BannerRepository
	Order   repository.OrderRepository
	Profile repository.ProfileRepository
	Shop    repository.ShopRepository
}

// Services 服务集合
type Services struct {
	Banner    *service.BannerService
	Order     *service.OrderService
	Profile   *service.ProfileService
	AuthState *service.AuthState
	Storage   service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Configuration) *gorm.DB {
	return database.InitDB(cfg.DatabaseDSN,
		&model.Profile{}, &model.Shop{}, &model.Category{},
		&model.Product{}, &model.Banner{},
		&model.Order{}, &model.OrderItem{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Configuration, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Banner:  repository.NewBannerRepository(db),
		Order:   repository.NewOrderRepository(db),
		Profile: repository.NewProfileRepository(db),
		Shop:    repository.NewShopRepository(db),
	}

	// -------- 外部服务 --------
	authClient := authclient.New(&authclient.Config{
		BaseURL: cfg.AuthBaseURL,
		APIKey:  cfg.AuthAPIKey,
		Timeout: cfg.AuthTimeout,
	})
	storage := initStorage(cfg)

	// -------- 业务服务 --------
	services := &Services{
		Banner:    service.NewBannerService(repos.Banner, storage),
		Order:     service.NewOrderService(repos.Order),
		Profile:   service.NewProfileService(repos.Profile),
		AuthState: service.NewAuthState(),
		Storage:   storage,
	}

	// 认证状态变更日志，方便排查会话问题
	services.AuthState.Subscribe(func(event string, snap service.AuthSnapshot) {
		entry := logrus.WithField("event", event)
		if snap.Identity != nil {
			entry = entry.WithField("user_id", snap.Identity.ID)
		}
		entry.Debug("认证状态变更")
	})

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Banner: controller.NewBannerController(services.Banner),
		Order:  controller.NewOrderController(services.Order),
		Auth:   controller.NewAuthController(authClient, services.Profile, services.AuthState),
		Vendor: controller.NewVendorController(services.Order, repos.Shop),
	}

	return &Dependencies{
		DB:          db,
		AuthClient:  authClient,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化对象存储（未配置时禁用图片上传）
func initStorage(cfg *config.Configuration) service.StorageService {
	if cfg.StorageBucket == "" {
		logrus.Warn("对象存储未配置，横幅图片上传被禁用")
		return nil
	}

	storage, err := service.NewS3Storage(&service.StorageConfig{
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		CDNDomain: cfg.StorageCDNDomain,
		BasePath:  cfg.StorageBasePath,
	})
	if err != nil {
		logrus.Warnf("存储服务初始化失败: %v", err)
		return nil
	}
	return storage
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	sweep := task.NewBannerSweepTask(deps.Repos.Banner)
	sweep.Start()
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Configuration, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logrus.Infof("服务启动在 %s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("服务强制关闭: %v", err)
	}

	logrus.Info("服务已退出")
}
