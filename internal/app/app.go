package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/interviewsim-backend/internal/clients/redis"
	"github.com/yungbote/interviewsim-backend/internal/data/db"
	"github.com/yungbote/interviewsim-backend/internal/data/repos/interviews"
	"github.com/yungbote/interviewsim-backend/internal/data/repos/users"
	httpx "github.com/yungbote/interviewsim-backend/internal/http"
	httpH "github.com/yungbote/interviewsim-backend/internal/http/handlers"
	httpMW "github.com/yungbote/interviewsim-backend/internal/http/middleware"
	interviewmod "github.com/yungbote/interviewsim-backend/internal/modules/interview"
	"github.com/yungbote/interviewsim-backend/internal/platform/logger"
	"github.com/yungbote/interviewsim-backend/internal/platform/openai"
	"github.com/yungbote/interviewsim-backend/internal/platform/rubric"
	"github.com/yungbote/interviewsim-backend/internal/services"
)

type App struct {
	Log    *logger.Logger
	DB     *gorm.DB
	Cfg    Config
	Server *httpx.Server

	cache redisclient.Cache
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	dbService, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := dbService.AutoMigrateAll(); err != nil {
			log.Sync()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	theDB := dbService.DB()

	// Repos
	interviewRepo := interviews.NewInterviewRepo(theDB, log)
	questionRepo := interviews.NewQuestionRepo(theDB, log)
	responseRepo := interviews.NewResponseRepo(theDB, log)
	skillGapRepo := interviews.NewSkillGapRepo(theDB, log)
	userRepo := users.NewUserRepo(theDB, log)

	// AI + rubric
	aiClient, err := openai.NewClient(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init ai client: %w", err)
	}
	rb, err := rubric.Load()
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load rubric: %w", err)
	}

	// Redis is optional; without it score reports are recomputed every time.
	var cache redisclient.Cache
	if os.Getenv("REDIS_ADDR") != "" {
		cache, err = redisclient.NewCache(log)
		if err != nil {
			log.Warn("redis cache unavailable, continuing without it", "error", err)
			cache = nil
		}
	}

	interviewUsecases := interviewmod.New(interviewmod.UsecasesDeps{
		DB:         theDB,
		Log:        log,
		AI:         aiClient,
		Rubric:     rb,
		Cache:      cache,
		Interviews: interviewRepo,
		Questions:  questionRepo,
		Responses:  responseRepo,
		SkillGaps:  skillGapRepo,
	})

	authService := services.NewAuthService(theDB, log, userRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	userService := services.NewUserService(theDB, log, userRepo)

	server := httpx.NewServer(httpx.RouterConfig{
		AuthHandler:      httpH.NewAuthHandler(authService),
		AuthMiddleware:   httpMW.NewAuthMiddleware(log, authService),
		UserHandler:      httpH.NewUserHandler(userService),
		InterviewHandler: httpH.NewInterviewHandler(log, interviewUsecases),
		SkillGapHandler:  httpH.NewSkillGapHandler(log, interviewUsecases),
		HealthHandler:    httpH.NewHealthHandler(),
	})

	return &App{
		Log:    log,
		DB:     theDB,
		Cfg:    cfg,
		Server: server,
		cache:  cache,
	}, nil
}

// Run serves HTTP until the context is canceled or an interrupt arrives, then
// drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("http server listening", "addr", a.Cfg.HTTPAddr)
		return a.Server.Run(a.Cfg.HTTPAddr)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
