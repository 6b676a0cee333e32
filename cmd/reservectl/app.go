package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Goden-Gun/reserve-lib/pkg/account"
	"github.com/Goden-Gun/reserve-lib/pkg/api"
	"github.com/Goden-Gun/reserve-lib/pkg/bootstrap"
	"github.com/Goden-Gun/reserve-lib/pkg/config"
	log "github.com/Goden-Gun/reserve-lib/pkg/logger"
	"github.com/Goden-Gun/reserve-lib/pkg/session"
	"github.com/Goden-Gun/reserve-lib/pkg/storage"
	"github.com/Goden-Gun/reserve-lib/pkg/transport"
)

// Config 命令行工具的完整配置
type Config struct {
	App     config.AppConfig     `yaml:"app" mapstructure:"app"`
	Log     config.LogConfig     `yaml:"log" mapstructure:"log"`
	Backend config.BackendConfig `yaml:"backend" mapstructure:"backend"`
	Mock    config.MockConfig    `yaml:"mock" mapstructure:"mock"`
	Storage config.StorageConfig `yaml:"storage" mapstructure:"storage"`
	Redis   config.RedisConfig   `yaml:"redis" mapstructure:"redis"`
	Tracing config.TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults 填充各段默认值
func (c *Config) ApplyDefaults() {
	c.Backend.ApplyDefaults()
	c.Mock.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Tracing.ApplyDefaults()
}

// app 聚合一次命令执行所需的依赖
type app struct {
	cfg     Config
	sess    *session.Store
	api     *api.API
	mock    *api.Mock
	account *account.Service

	shutdown []func(context.Context) error
}

// newApp 加载配置并按顺序初始化日志、追踪、存储、会话与 API
func newApp(ctx context.Context) (*app, error) {
	var cfg Config
	if err := config.Load(&cfg, config.LoadOptions{
		ConfigPath:    "./configs",
		EnvPrefix:     "RESERVE",
		AllowNoConfig: true,
	}); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := bootstrap.InitLogger(cfg.Log); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	stopTracing, err := bootstrap.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}
	a.shutdown = append(a.shutdown, stopTracing)

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	a.sess = session.NewStore(store)
	a.sess.Restore(ctx)

	client, err := newTransportClient(cfg.Backend, store)
	if err != nil {
		return nil, err
	}

	tokenSecret := cfg.Mock.TokenSecret
	if tokenSecret == "" {
		tokenSecret = config.GetSecretOrEnv("RESERVE_TOKEN_SECRET", "")
	}
	a.mock = api.NewMock(api.MockOptions{
		Delay:       time.Duration(cfg.Mock.DelayMillis) * time.Millisecond,
		TokenSecret: tokenSecret,
		TokenTTL:    cfg.Mock.TokenTTL.Duration(),
	})
	a.api, err = api.New(api.Options{Transport: client, Mock: a.mock})
	if err != nil {
		return nil, err
	}

	a.account, err = account.NewService(a.api, a.sess)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// openStore 按配置选择会话持久化驱动
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	switch a.cfg.Storage.Driver {
	case "", "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		return storage.NewFileStore(a.cfg.Storage.FilePath)
	case "redis":
		client, err := bootstrap.InitRedis(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.shutdown = append(a.shutdown, func(context.Context) error {
			return client.Close()
		})
		return storage.NewRedisStore(client, a.cfg.Storage.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", a.cfg.Storage.Driver)
	}
}

// newTransportClient 构建真实后端客户端；存在环境变量覆写时把超时留给
// 客户端每次请求时读取
func newTransportClient(cfg config.BackendConfig, store storage.Store) (*transport.Client, error) {
	var timeout time.Duration
	if os.Getenv(config.EnvRequestTimeout) == "" {
		timeout = time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond
	}
	return transport.NewClient(transport.Options{
		BaseURL: cfg.BaseURL,
		Timeout: timeout,
		Storage: store,
	})
}

func (a *app) close(ctx context.Context) {
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](ctx); err != nil {
			log.WithError(err).Warn("资源关闭失败")
		}
	}
}
