package main

import (
	"CivicQuiz/config"
	_ "CivicQuiz/config/swagger"
	"CivicQuiz/controllers"
	"CivicQuiz/middleware"
	"CivicQuiz/routes"
	"CivicQuiz/services/lobby"
	"CivicQuiz/services/persistence"
	"CivicQuiz/services/quiz/npc"
	"CivicQuiz/services/quiz/session"
	"CivicQuiz/services/redis"
	sio "CivicQuiz/services/socket_io"
	"CivicQuiz/sync"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title CivicQuiz API
// @version 1.0
// @description Gin-Gonic server for the CivicQuiz multiplayer quiz engine
// @BasePath /
// @paths
func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

func run() error {
	logCfg, err := config.ReadLogConfig()
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(logCfg, "civicquiz.log")
	if err != nil {
		return err
	}
	logger.Info("Setting up server...")

	serverCfg, err := config.ReadServerConfig()
	if err != nil {
		return err
	}
	engineCfg, err := config.ReadEngineConfig()
	if err != nil {
		return err
	}
	npcCfg, err := engineCfg.NPCConfig()
	if err != nil {
		return err
	}

	if serverCfg.Prod {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		return fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}
	// Only migrate in development or during deployment
	if serverCfg.MigratePostgres {
		logger.Info("[POSTGRES] migrating database")
		if err := config.MigrateDatabase(gormDB); err != nil {
			logger.Warn("[POSTGRES] migration failed", "err", err)
		}
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("error reading GORM PostgreSQL instance: %w", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.ConnectRedis(context.Background(), serverCfg)
	if err != nil {
		return err
	}
	defer redis.CloseRedis(redisClient)

	store := persistence.NewStore(gormDB)
	questionBank := persistence.NewQuestionRepository(gormDB)
	if n, err := questionBank.Count(context.Background()); err == nil && n == 0 {
		logger.Warn("[POSTGRES] question bank is empty, run cmd/seed before starting a game")
	}

	sioServer := sio.New()
	broadcaster := sio.NewRoomBroadcaster(sioServer.Server(), logger)
	messenger := sio.NewSystemMessenger(redisClient, broadcaster)

	outbox := session.NewOutbox(session.OutboxConfig{
		Responses: store,
		Attempts:  store,
		Notifier:  redisClient,
		Messenger: messenger,
		Workers:   engineCfg.OutboxWorkers,
		QueueSize: engineCfg.OutboxQueueSize,
		Timeout:   engineCfg.PersistTimeout,
		Logger:    logger,
	})
	defer outbox.Close()

	syncManager := sync.NewSyncManager(redisClient, gormDB, logger)
	manager := session.NewManager(session.Deps{
		Rooms:       redisClient,
		Effects:     outbox,
		Broadcaster: broadcaster,
		NPC:         npc.NewSimulator(npcCfg, nil),
		NewID:       uuid.NewString,
		Logger:      logger,
		CallTimeout: engineCfg.PersistTimeout,
		OnComplete:  syncManager.OnComplete,
	}, questionBank)

	lobbyService := lobby.New(redisClient, store, manager, logger)

	r := gin.New()
	middleware.SetUpMiddleware(r, serverCfg.AllowedOrigins, logger)

	origin := "*"
	if len(serverCfg.AllowedOrigins) == 1 {
		origin = serverCfg.AllowedOrigins[0]
	}
	sioServer.Start(r, sio.Options{
		Lobby:         lobbyService,
		RatePerSecond: engineCfg.SocketRatePerSecond,
		Burst:         engineCfg.SocketBurst,
		Timeout:       engineCfg.PersistTimeout,
		Origin:        origin,
		Logger:        logger,
	})

	routes.SetupRoutes(r, &controllers.RoomController{
		Sessions: manager,
		Rooms:    redisClient,
		History:  store,
	})

	server := &http.Server{
		Addr:              ":" + serverCfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server started", "port", serverCfg.Port, "tls", serverCfg.TLSCert != "")
		var err error
		if serverCfg.TLSCert != "" && serverCfg.TLSKey != "" {
			err = server.ListenAndServeTLS(serverCfg.TLSCert, serverCfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		manager.Shutdown(shutdownCtx)
		sioServer.Close()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "err", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
