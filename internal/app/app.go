package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/lunargate/preload/internal/config"
	"github.com/lunargate/preload/internal/server"
	"github.com/lunargate/preload/pkg/assets"
	"github.com/lunargate/preload/pkg/deps"
	"github.com/lunargate/preload/pkg/scene"
)

// App wires the asset catalog, scene definitions, and resolver together for
// a preload run.
type App struct {
	cfg           *config.Config
	metricsServer *server.MetricsServer
	redisClient   *redis.Client

	catalog   assets.Catalog
	installer assets.Installer
	registry  *deps.Registry
	pkgKind   *deps.Kind
	sceneKind *deps.Kind
}

// New creates and initializes an application instance: catalog first, then
// scene definitions, then the component kinds built on both.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing preloader...")

	a := &App{cfg: cfg}

	switch cfg.CatalogMode {
	case "redis":
		addr := cfg.RedisHost + ":" + cfg.RedisPort
		client, err := assets.InitRedisClient(ctx, addr, cfg.RedisPassword,
			cfg.RedisMaxRetries, time.Duration(cfg.RedisRetryDelayMs)*time.Millisecond)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis catalog: %w", err)
		}
		a.redisClient = client
		catalog := assets.NewRedisCatalog(client, assets.RedisCatalogConfig{})
		a.catalog, a.installer = catalog, catalog
	case "dir":
		catalog := assets.NewDirCatalog(cfg.CatalogDir)
		a.catalog, a.installer = catalog, catalog
	default:
		return nil, fmt.Errorf("unknown catalog mode: %q", cfg.CatalogMode)
	}
	logrus.Infof("using %s asset catalog", cfg.CatalogMode)

	sceneCfg, err := scene.LoadConfig(cfg.ScenesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene definitions: %w", err)
	}
	logrus.Infof("loaded %d scene definitions from %s", len(sceneCfg.Scenes), cfg.ScenesPath)

	a.pkgKind = assets.NewPackageKind(a.catalog)
	a.sceneKind = scene.NewKind(sceneCfg, a.pkgKind)

	a.registry = deps.NewRegistry()
	for _, k := range []*deps.Kind{a.pkgKind, a.sceneKind} {
		if err := a.registry.Register(k); err != nil {
			return nil, fmt.Errorf("failed to register component kind: %w", err)
		}
	}
	logrus.Infof("registered %d component kinds", a.registry.Count())

	a.metricsServer = server.NewMetricsServer(cfg.MetricsPort)

	return a, nil
}

// Preload resolves and loads the root scene's dependency set. When the first
// resolve reports missing asset packages and fetching is configured, the
// missing packages are downloaded and a fresh set is resolved; the resolver
// itself never retries.
func (a *App) Preload(ctx context.Context) error {
	root := deps.New(a.sceneKind, a.cfg.RootScene)

	set := deps.NewSet(root, deps.WithMaxDepth(a.cfg.ResolveMaxDepth))
	err := set.Resolve(ctx)

	var missErr *deps.MissingDependencyError
	if errors.As(err, &missErr) {
		if a.cfg.FetchBaseURL == "" {
			return err
		}
		logrus.Warnf("%d missing dependencies, fetching: %v", len(missErr.Missing), missErr.Missing)

		fetcher := assets.NewFetcher(assets.NewHTTPDownloader(a.cfg.FetchBaseURL), a.installer)
		fetcher.MaxRetries = uint64(a.cfg.FetchMaxRetries)
		if err := fetcher.FetchMissing(ctx, missErr); err != nil {
			return err
		}

		// A failed resolve leaves no usable state behind; start over with a
		// fresh set now that the packages are installed.
		set = deps.NewSet(root, deps.WithMaxDepth(a.cfg.ResolveMaxDepth))
		err = set.Resolve(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve scene %s: %w", a.cfg.RootScene, err)
	}

	if err := set.Load(ctx); err != nil {
		return fmt.Errorf("failed to load scene %s: %w", a.cfg.RootScene, err)
	}

	ids, err := set.AssetPackageIDs()
	if err != nil {
		return err
	}

	rootComponent, err := set.Root()
	if err != nil {
		return err
	}
	sc := rootComponent.(*scene.Scene)

	logrus.Infof("preloaded scene %s: %d components, asset packages: %s",
		sc.Name(), set.Len(), strings.Join(ids, ", "))
	return nil
}
