// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crm-service/internal/config"
	"crm-service/internal/db"
	"crm-service/internal/events"
	authHandler "crm-service/internal/handlers/auth"
	bookingHandler "crm-service/internal/handlers/booking"
	catalogHandler "crm-service/internal/handlers/catalog"
	clientHandler "crm-service/internal/handlers/client"
	dashboardHandler "crm-service/internal/handlers/dashboard"
	followupHandler "crm-service/internal/handlers/followup"
	healthHandler "crm-service/internal/handlers/health"
	jobHandler "crm-service/internal/handlers/job"
	leadHandler "crm-service/internal/handlers/lead"
	messageHandler "crm-service/internal/handlers/message"
	wsHandler "crm-service/internal/handlers/websocket"
	"crm-service/internal/logger"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/session"
	"crm-service/internal/pkg/validate"
	"crm-service/internal/queue"
	"crm-service/internal/repository/postgres"
	authUsecase "crm-service/internal/service/auth"
	bookingUsecase "crm-service/internal/service/booking"
	catalogUsecase "crm-service/internal/service/catalog"
	clientUsecase "crm-service/internal/service/client"
	dashboardUsecase "crm-service/internal/service/dashboard"
	followupUsecase "crm-service/internal/service/followup"
	jobUsecase "crm-service/internal/service/job"
	leadUsecase "crm-service/internal/service/lead"
	messageUsecase "crm-service/internal/service/message"
	"crm-service/internal/websocket"
	wsHandlers "crm-service/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger

	pool   *pgxpool.Pool
	redis  *redis.Client
	rabbit *queue.RabbitMQ
	cancel context.CancelFunc
}

func NewServer(cfg config.AppConfig) (*Server, error) {
	log, err := logger.New("crm-api", cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validate.Setup()

	engine, err := NewEngine(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, engine: engine, logger: log}, nil
}

// NewEngine returns a bare gin engine whose ClientIP only honours forwarding
// headers set by trustedProxies. With none, ClientIP is the peer address.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	return engine, nil
}

// Logger returns the process logger.
func (s *Server) Logger() *zap.Logger {
	return s.logger
}

// Start connects every dependency, wires the handlers and serves HTTP until
// Shutdown is called. It returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{URL: s.cfg.DatabaseURL, MaxConns: s.cfg.DBMaxConns})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool
	s.logger.Info("connected to PostgreSQL")

	if s.cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			return err
		}
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(ctx, db.RedisConfig{
		Address:  s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: s.cfg.RedisPoolSize,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redis = redisClient
	s.logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- Session signing -----
	jwtManager, err := jwt.Build(s.cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to build session signer: %w", err)
	}

	sessionManager := session.NewManager(redisClient, s.cfg.SessionTTL)
	rateLimiter := session.NewRateLimiter(redisClient, s.cfg.AuthRateLimit, s.cfg.AuthRateWindow)
	cookie := session.Cookie{Name: s.cfg.SessionCookie, Secure: s.cfg.IsProduction()}

	// ----- Events & outbound queue -----
	bus := events.NewBus(redisClient, s.logger)

	var outbound messageUsecase.OutboundQueue
	if s.cfg.AMQPURL != "" {
		rabbit, err := queue.NewRabbitMQ(s.cfg.AMQPURL)
		if err != nil {
			return err
		}
		s.rabbit = rabbit
		outbound = queue.NewProducer(rabbit.Ch)
		s.logger.Info("outbound message queue enabled")
	} else {
		s.logger.Warn("AMQP_URL not set, outbound messages will not be queued")
	}

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	followUpRepo := postgres.NewFollowUpRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(s.logger)
	go hub.Run(ctx)

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(userRepo, sessionManager, rateLimiter, jwtManager, hub, s.logger)
	clientService := clientUsecase.NewClientService(clientRepo, s.logger)
	leadService := leadUsecase.NewLeadService(dbWrapper, leadRepo, clientRepo, s.logger)
	jobService := jobUsecase.NewJobService(jobRepo, s.logger)
	bookingService := bookingUsecase.NewBookingService(bookingRepo, s.logger)
	messageService := messageUsecase.NewMessageService(messageRepo, bus, outbound, s.logger)
	catalogService := catalogUsecase.NewCatalogService(catalogRepo, s.logger)
	followUpService := followupUsecase.NewFollowUpService(followUpRepo, s.logger)
	dashboardService := dashboardUsecase.NewDashboardService(statsRepo, s.cfg.DatabaseURL, s.logger)

	// Register WebSocket handlers
	hub.RegisterHandler(wsHandlers.NewInboxHandler(messageService))

	eventsCh, err := bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}
	go hub.Relay(eventsCh)

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authService, cookie, s.logger),
		ClientHandler:    clientHandler.NewClientHandler(clientService),
		LeadHandler:      leadHandler.NewLeadHandler(leadService),
		JobHandler:       jobHandler.NewJobHandler(jobService),
		BookingHandler:   bookingHandler.NewBookingHandler(bookingService),
		MessageHandler:   messageHandler.NewMessageHandler(messageService),
		CatalogHandler:   catalogHandler.NewCatalogHandler(catalogService),
		FollowUpHandler:  followupHandler.NewFollowUpHandler(followUpService),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardService),
		HealthHandler: healthHandler.NewHealthHandler(map[string]healthHandler.Check{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		}, s.logger),
		WSHandler:      wsHandler.NewWebSocketHandler(hub, s.cfg.CORSAllowOrigin, s.logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authService, cookie),
	}
	SetupRouter(s.engine, s.logger, s.cfg, handlers)

	// ----- Start HTTP -----
	s.http = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	return s.http.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones and releases
// every connection Start opened.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.rabbit != nil {
		if err := s.rabbit.Close(); err != nil {
			errs = append(errs, fmt.Errorf("rabbitmq close: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	_ = s.logger.Sync()
	return errors.Join(errs...)
}

func (s *Server) migrate() error {
	conn, err := db.OpenSQL(s.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	applied, err := db.RunMigrations(conn)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	s.logger.Info("migrations applied", zap.Ints("versions", applied))
	return nil
}
