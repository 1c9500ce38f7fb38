// Package app 负责装配：打开账户存储，并发加载影片目录、用户和额外推荐节点，构建推荐引擎。
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/movietrack/account"
	"github.com/rushteam/movietrack/catalog"
	"github.com/rushteam/movietrack/config"
	"github.com/rushteam/movietrack/config/builders"
	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/logging"
	"github.com/rushteam/movietrack/pipeline"
	"github.com/rushteam/movietrack/recommend"
	"github.com/rushteam/movietrack/store"
)

// App 持有一次运行所需的全部组件。
type App struct {
	Config   *config.Config
	Catalog  *catalog.Library
	Accounts *account.Service
	Engine   *recommend.Engine

	// store 是 KV 驱动下的账户存储，csv 驱动时为 nil
	store core.Store
}

// Bootstrap 按配置装配 App。影片目录缺失是致命错误。
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	kv, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	builders.UseStore(kv, cfg.Pipeline.BlacklistKey)

	var repo account.Repository
	if kv != nil {
		repo = account.NewKVRepository(kv)
	} else {
		repo = account.NewCSVRepository(cfg.Accounts.Path)
	}

	var (
		lib   *catalog.Library
		users []*account.User
		extra *pipeline.Pipeline
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lib, err = catalog.LoadFile(cfg.Catalog.Path)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = repo.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		extra, err = config.LoadPipeline(cfg.Pipeline.Path)
		return err
	})
	if err := g.Wait(); err != nil {
		if kv != nil {
			_ = kv.Close()
		}
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	svc := account.NewService(repo, lib, account.WithBcryptCost(cfg.Accounts.BcryptCost))
	svc.SetUsers(users)

	opts := []recommend.Option{recommend.WithExtraPipeline(extra)}
	if cfg.Recommend.Seed != 0 {
		opts = append(opts, recommend.WithRand(rand.New(rand.NewPCG(cfg.Recommend.Seed, cfg.Recommend.Seed))))
	}

	logging.Info().
		Int("movies", lib.Len()).
		Int("users", svc.Len()).
		Str("accounts", repo.Name()).
		Msg("bootstrap complete")

	return &App{
		Config:   cfg,
		Catalog:  lib,
		Accounts: svc,
		Engine:   recommend.New(opts...),
		store:    kv,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (core.Store, error) {
	switch cfg.Accounts.Driver {
	case config.DriverCSV, "":
		return nil, nil
	case config.DriverMemory:
		return store.NewMemoryStore(), nil
	case config.DriverRedis:
		s, err := store.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return s, nil
	case config.DriverBadger:
		s, err := store.OpenBadgerStore(cfg.Badger.Dir)
		if err != nil {
			return nil, fmt.Errorf("open badger %s: %w", cfg.Badger.Dir, err)
		}
		return s, nil
	default:
		return nil, core.NewDomainError(core.ModuleConfig, core.ErrorCodeInvalidInput,
			fmt.Sprintf("unknown accounts driver %q", cfg.Accounts.Driver))
	}
}

// Close 保存用户并释放存储。
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Accounts != nil {
		if err := a.Accounts.Save(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s store: %w", a.store.Name(), err))
		}
	}
	return errors.Join(errs...)
}
