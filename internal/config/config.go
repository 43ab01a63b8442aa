package config

import (
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Configuration 应用配置，全部来自环境变量
type Configuration struct {
	Address     string `env:"ADDRESS" envDefault:":8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	DatabaseDSN string `env:"DATABASE_DSN,required"`

	// 托管认证服务
	AuthBaseURL string        `env:"AUTH_BASE_URL,required"`
	AuthAPIKey  string        `env:"AUTH_API_KEY,required"`
	AuthTimeout time.Duration `env:"AUTH_TIMEOUT" envDefault:"10s"`

	// 对象存储（横幅图片，留空则禁用上传）
	StorageBucket    string `env:"STORAGE_BUCKET"`
	StorageRegion    string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	StorageAccessKey string `env:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `env:"STORAGE_SECRET_KEY"`
	StorageCDNDomain string `env:"STORAGE_CDN_DOMAIN"`
	StorageBasePath  string `env:"STORAGE_BASE_PATH" envDefault:"mall-admin"`
}

// Load 读取 .env（如存在）并解析环境变量
func Load() (*Configuration, error) {
	// .env 缺失不算错，生产环境直接用真实环境变量
	if err := godotenv.Load(); err != nil {
		logrus.Debug("未找到 .env 文件，使用进程环境变量")
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
