package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"study_coach_backend/internal/config"
	"study_coach_backend/internal/controller"
	"study_coach_backend/internal/repository"
	"study_coach_backend/internal/service"
	"study_coach_backend/internal/util"
	"study_coach_backend/pkg/configwatcher"
	"study_coach_backend/pkg/database"
	"study_coach_backend/pkg/logger"
	"study_coach_backend/pkg/monitoring"
	"study_coach_backend/pkg/security"
	"study_coach_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	shutdownTracer  func(context.Context) error
}

type repositories struct {
	session    *repository.SessionRepository
	goal       *repository.GoalRepository
	dismissals repository.ReminderDismissalStore
}

type services struct {
	storage   *service.StorageService
	session   *service.SessionService
	goal      *service.GoalService
	analytics *service.AnalyticsService
	scanner   *service.ReminderScanner
}

type controllers struct {
	session   *controller.SessionController
	goal      *controller.GoalController
	reminder  *controller.ReminderController
	analytics *controller.AnalyticsController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		session: repository.NewSessionRepository(db),
		goal:    repository.NewGoalRepository(db),
	}

	// 未配置 Redis 时提醒关闭状态保存在进程内
	if rdb != nil {
		repos.dismissals = repository.NewRedisDismissalStore(rdb)
	} else {
		repos.dismissals = repository.NewMemoryDismissalStore(time.Now)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.session = service.NewSessionService(repos.session, s.storage)
	s.goal = service.NewGoalService(repos.goal, repos.session, repos.dismissals)
	s.analytics = service.NewAnalyticsService(repos.session)
	s.scanner = service.NewReminderScanner(repos.goal, s.goal, cfg.Reminder.ScanInterval)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		session:   controller.NewSessionController(s.session),
		goal:      controller.NewGoalController(s.goal),
		reminder:  controller.NewReminderController(s.goal),
		analytics: controller.NewAnalyticsController(s.analytics),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowNetlify))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Build 用已建立的连接组装应用，rdb 可以为 nil
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg.Server.Mode)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	return app
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// release 模式下默认不自动迁移，需显式指定
	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Log.Warn("Redis not configured, reminder dismissals are kept in memory")
	}

	app := Build(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.shutdownTracer = tp.Shutdown
		}
	}

	if cfg.Storage.Type == util.StorageLocal {
		logger.Log.Info("Exports stored on local disk", zap.String("path", cfg.Storage.LocalPath))
	}

	return app, nil
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	if a.Config.Reminder.ScanEnabled {
		go a.services.scanner.Run(ctx)
	}

	if a.Config.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, a.applyConfig); err != nil {
				logger.Log.Warn("Config watcher disabled", zap.Error(err))
			}
		}()
	}
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.startBackgroundTasks(ctx)

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
	return nil
}
