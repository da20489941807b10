package app

import (
	"context"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/shopmind/shopmind/config"
	"github.com/shopmind/shopmind/internal/ai"
	"github.com/shopmind/shopmind/internal/catalog"
	"github.com/shopmind/shopmind/internal/chatbot"
	"github.com/shopmind/shopmind/internal/domain"
	"github.com/shopmind/shopmind/internal/order"
	"github.com/shopmind/shopmind/internal/semantic"
	"github.com/shopmind/shopmind/internal/store"
)

type Application struct {
	appConfig     *config.AppConfig
	gormDB        *gorm.DB
	sched         *cron.Cron
	configManager *ConfigManager

	semanticStore semantic.Store
	indexer       *semantic.Indexer

	productRepo store.ProductRepository
	orderRepo   store.OrderRepository
	syncJobRepo store.SyncJobRepository

	catalogService *catalog.Service
	orderService   *order.Service
	chatResponder  *chatbot.Responder
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ SemanticProvider  = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	a.checkSettings()
	a.checkProducts()

	a.configManager = NewConfigManager(a.gormDB)

	a.initRepositories()
	a.initSemantic()
	a.initServices()
	a.initJob()
}

func (a *Application) initRepositories() {
	a.productRepo = store.NewGormProductRepository(a.gormDB)
	a.orderRepo = store.NewGormOrderRepository(a.gormDB)
	a.syncJobRepo = store.NewGormSyncJobRepository(a.gormDB)

	if a.appConfig.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     a.appConfig.Redis.Addr,
			Password: a.appConfig.Redis.Passwd,
			DB:       a.appConfig.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			zap.L().Warn("redis unavailable, product cache disabled", zap.Error(err))
		} else {
			a.productRepo = store.NewCachedProductRepository(a.productRepo, client)
			zap.L().Info("redis product cache enabled", zap.String("addr", a.appConfig.Redis.Addr))
		}
	}
}

func (a *Application) initSemantic() {
	timeout := time.Duration(a.appConfig.AI.TimeoutSecs) * time.Second

	var embedder semantic.Embedder
	if a.appConfig.AI.APIKey != "" {
		embedder = semantic.NewOpenAIEmbedder(semantic.OpenAIEmbedderConfig{
			BaseURL: a.appConfig.AI.BaseURL,
			APIKey:  a.appConfig.AI.APIKey,
			Model:   a.appConfig.AI.EmbedModel,
			Timeout: timeout,
		})
	} else {
		zap.L().Warn("no AI api key configured, using local hash embedder")
		embedder = semantic.NewHashEmbedder(0)
	}

	switch a.appConfig.Semantic.Type {
	case "qdrant":
		a.semanticStore = semantic.NewQdrantStore(semantic.QdrantConfig{
			URL:        a.appConfig.Semantic.URL,
			APIKey:     a.appConfig.Semantic.APIKey,
			Collection: a.appConfig.Semantic.Collection,
		}, embedder)
	default:
		a.semanticStore = semantic.NewMemoryStore(embedder)
	}

	a.indexer = semantic.NewIndexer(a.semanticStore, a.syncJobRepo)
}

func (a *Application) initServices() {
	timeout := time.Duration(a.appConfig.AI.TimeoutSecs) * time.Second
	chatClient := ai.NewChatClient(ai.ClientConfig{
		BaseURL: a.appConfig.AI.BaseURL,
		APIKey:  a.appConfig.AI.APIKey,
		Model:   a.appConfig.AI.ChatModel,
		Timeout: timeout,
	})
	imageClient := ai.NewImageClient(ai.ClientConfig{
		BaseURL: a.appConfig.AI.BaseURL,
		APIKey:  a.appConfig.AI.APIKey,
		Model:   a.appConfig.AI.ImageModel,
		Timeout: timeout,
	})

	a.catalogService = catalog.NewService(a.productRepo, a.indexer, chatClient, imageClient)
	a.orderService = order.NewService(a.productRepo, a.orderRepo, a.indexer)

	responder, err := chatbot.NewResponder(a.appConfig.AI.PromptTemplate, a.semanticStore, chatClient)
	if err != nil {
		zap.L().Error("prompt template load failed, using default", zap.Error(err))
		responder, _ = chatbot.NewResponder("", a.semanticStore, chatClient)
	}
	a.chatResponder = responder
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// ConfigMgr returns the configuration manager
func (a *Application) ConfigMgr() *ConfigManager {
	return a.configManager
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// SemanticStore returns the vector store handle
func (a *Application) SemanticStore() semantic.Store {
	return a.semanticStore
}

// Indexer returns the semantic indexer
func (a *Application) Indexer() *semantic.Indexer {
	return a.indexer
}

// CatalogService returns the catalog service
func (a *Application) CatalogService() *catalog.Service {
	return a.catalogService
}

// OrderService returns the order service
func (a *Application) OrderService() *order.Service {
	return a.orderService
}

// ChatResponder returns the RAG chat responder
func (a *Application) ChatResponder() *chatbot.Responder {
	return a.chatResponder
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.configManager.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.configManager.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.configManager.GetBool(category, key)
}

// StartBackgroundJobs starts the semantic sync replay loop
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	interval := a.GetSettingsInt64Value("semantic", "SyncIntervalSecs")
	if interval <= 0 {
		interval = 60
	}
	a.indexer.Start(ctx, time.Duration(interval)*time.Second)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.indexer != nil {
		a.indexer.Stop()
	}
	_ = zap.L().Sync()
}
