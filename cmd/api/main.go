package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"ai-blog-generator/cmd/api/auth"
	"ai-blog-generator/cmd/api/router"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/config"
	"ai-blog-generator/db"
	"ai-blog-generator/httpclient"
	"ai-blog-generator/logger"
	"ai-blog-generator/repositories"
	"ai-blog-generator/summarizer"
	"ai-blog-generator/transcript"
)

// @title           AI Blog Generator API
// @version         1.0
// @description     YouTube 자막을 Gemini 로 요약해 블로그 글로 저장하는 서비스
// @BasePath        /
func main() {
	if err := run(); err != nil {
		logger.Log.Errorf("api server stopped: %v", err)
		os.Exit(1)
	}
}

// stores 는 storage.driver / session.store 설정에 따라 고른 저장소 묶음이다.
type stores struct {
	summaries repositories.SummaryRepository
	users     repositories.UserRepository
	sessions  repositories.SessionRepository
	ping      func(ctx context.Context) error
	closers   []func(ctx context.Context) error
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Logging.Level)
	if os.Getenv("SERVICE_NAME") == "" {
		_ = os.Setenv("SERVICE_NAME", "ai-blog-generator")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			logger.Log.Warnf("close stores: %v", err)
		}
	}()

	outbound := httpclient.New(httpclient.Config{Timeout: cfg.Transcript.Timeout})
	fetcher := transcript.NewFetcher(cfg.Transcript, outbound)
	gen, err := summarizer.New(ctx, cfg.Gemini, httpclient.New(httpclient.Config{Timeout: cfg.Gemini.Timeout}))
	if err != nil {
		return fmt.Errorf("init summarizer: %w", err)
	}

	jwtManager, err := auth.NewJWTManager(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := router.New(router.Deps{
		Summaries:     services.NewSummaryService(fetcher, gen, st.summaries),
		Auth:          services.NewAuthService(st.users, st.sessions, jwtManager, cfg.Auth.BcryptCost),
		AuthCfg:       cfg.Auth,
		StorageDriver: cfg.Storage.Driver,
		Ping:          st.ping,
	})
	if err != nil {
		return fmt.Errorf("init router: %w", err)
	}

	var handler http.Handler = engine
	if len(cfg.Server.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id", "X-Span-Id"},
			AllowCredentials: true,
		}).Handler(engine)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoWithFields("api server listening", logger.Fields{
			"addr":          cfg.Server.Addr,
			"storage":       cfg.Storage.Driver,
			"session_store": cfg.Session.Store,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStores(ctx context.Context, cfg *config.AppConfig) (*stores, error) {
	st := &stores{}

	var mongoDB *mongo.Database
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		gdb, err := db.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		st.summaries = repositories.NewGormSummaryRepository(gdb)
		st.users = repositories.NewGormUserRepository(gdb)
		st.ping = func(ctx context.Context) error { return db.PingPostgres(ctx, gdb) }
		st.closers = append(st.closers, func(context.Context) error { return closeGorm(gdb) })
	default:
		client, database, err := db.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		mongoDB = database
		st.summaries = repositories.NewMongoSummaryRepository(database)
		st.users = repositories.NewMongoUserRepository(database)
		st.ping = func(ctx context.Context) error { return db.PingMongo(ctx, database) }
		st.closers = append(st.closers, client.Disconnect)
	}

	switch cfg.Session.Store {
	case config.SessionStoreMongo:
		st.sessions = repositories.NewMongoSessionRepository(mongoDB)
	default:
		rdb, err := db.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			if closeErr := st.close(ctx); closeErr != nil {
				logger.Log.Warnf("close stores: %v", closeErr)
			}
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		st.sessions = repositories.NewRedisSessionRepository(rdb)
		st.closers = append(st.closers, func(context.Context) error { return rdb.Close() })
	}

	return st, nil
}

// close 는 연 순서의 역순으로 저장소를 닫는다. 하나가 실패해도 나머지는 계속 닫는다.
func (st *stores) close(ctx context.Context) error {
	var errs []error
	for i := len(st.closers) - 1; i >= 0; i-- {
		if err := st.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	st.closers = nil
	return errors.Join(errs...)
}

func closeGorm(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
