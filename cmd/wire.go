package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/review-queue/internal/adapters/cache/memory"
	reviewrender "github.com/bnema/review-queue/internal/adapters/render/review"
	sqliterepo "github.com/bnema/review-queue/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/review-queue/internal/adapters/repo/toml"
	"github.com/bnema/review-queue/internal/application"
	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configDir  = ".rq"
	configFile = "config.toml"
	envPrefix  = "RQ"

	storeBackendKey = "store.backend"
	windowSizeKey   = "selection.window_size"
	logLevelKey     = "log.level"
	userKey         = "user"

	backendTOML   = "toml"
	backendSQLite = "sqlite"
)

var (
	errUserRequired       = errors.New("acting user is required (--user or RQ_USER)")
	errUnsupportedBackend = errors.New("unsupported store backend")
)

type app struct {
	cfg             *viper.Viper
	store           ports.ItemStore
	cache           *memory.PoolCache
	loader          *application.PoolLoader
	catalog         *application.CatalogService
	clock           ports.Clock
	logger          *zap.Logger
	cardRenderer    func(reviewrender.Card) (string, error)
	catalogRenderer func([]domain.ItemStats, reviewrender.RenderOptions) (string, error)
	now             func() time.Time
	closeStore      func() error
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.GetString(logLevelKey))
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	store, closeStore, err := newItemStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire item store: %w", err)
	}

	clock := ports.SystemClock{}
	cache := memory.NewPoolCache()

	return &app{
		cfg:             cfg,
		store:           store,
		cache:           cache,
		loader:          application.NewPoolLoader(store, cache, logger),
		catalog:         application.NewCatalogService(store, clock),
		clock:           clock,
		logger:          logger,
		cardRenderer:    reviewrender.RenderCard,
		catalogRenderer: reviewrender.RenderCatalog,
		now:             time.Now,
		closeStore:      closeStore,
	}, nil
}

func loadConfig() (*viper.Viper, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(storeBackendKey, backendTOML)
	cfg.SetDefault(windowSizeKey, domain.DefaultWindowSize)
	cfg.SetDefault(logLevelKey, "warn")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	path := filepath.Join(homeDir, configDir, configFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config file: %w", err)
	}

	cfg.SetConfigFile(path)
	cfg.SetConfigType("toml")
	if err := cfg.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = atomicLevel
	zcfg.Sampling = nil
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}

func newItemStore(cfg *viper.Viper) (ports.ItemStore, func() error, error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.GetString(storeBackendKey))); backend {
	case backendTOML:
		store, err := tomlrepo.NewItemStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case backendSQLite:
		store, err := sqliterepo.NewItemStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnsupportedBackend, backend)
	}
}

func (a *app) resolveUser(flag string) (domain.UserID, error) {
	user := strings.TrimSpace(flag)
	if user == "" {
		user = strings.TrimSpace(a.cfg.GetString(userKey))
	}
	if user == "" {
		return "", errUserRequired
	}

	return domain.UserID(user), nil
}

func (a *app) windowSize(flag int) int {
	if flag != 0 {
		return flag
	}
	return a.cfg.GetInt(windowSizeKey)
}

func (a *app) close() error {
	_ = a.logger.Sync()
	return a.closeStore()
}
