package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/fitbridge/fitbridge/internal/ai"
	"github.com/fitbridge/fitbridge/internal/aiplans"
	"github.com/fitbridge/fitbridge/internal/chat"
	"github.com/fitbridge/fitbridge/internal/config"
	"github.com/fitbridge/fitbridge/internal/dailylog"
	"github.com/fitbridge/fitbridge/internal/diet"
	"github.com/fitbridge/fitbridge/internal/instrumentation"
	"github.com/fitbridge/fitbridge/internal/middleware"
	"github.com/fitbridge/fitbridge/internal/storage"
	"github.com/fitbridge/fitbridge/internal/streaks"
	"github.com/fitbridge/fitbridge/internal/telemetry/tracing"
	"github.com/fitbridge/fitbridge/internal/users"
	"github.com/fitbridge/fitbridge/internal/workout"
	"github.com/fitbridge/fitbridge/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config  *config.Config
	storage *storage.Storage

	aiService *ai.Service

	redisClient *redis.Client

	// telemetry
	instr        *instrumentation.Instrumentation
	promRegistry *prometheus.Registry
	otelShutdown func()
}

type NewServerParams struct {
	Config                  *config.Config
	DatabaseServiceKey      string
	OpenAIApiKey            string
	DeepseekApiKey          string
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	store := storage.New(ctx, storage.Params{
		DatabaseURL:        cfg.DatabaseURL,
		DatabaseServiceKey: params.DatabaseServiceKey,
		TracingEnabled:     params.HoneycombTracingEnabled,
	})
	if store.Mock() {
		log.Warnln(" >>> storage running in memory mode, data is not persisted")
	}

	promRegistry := instrumentation.SetupPrometheus()
	if pool := store.Pool(); pool != nil {
		collector := pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": "fitbridge"})
		promRegistry.MustRegister(collector)
	}
	instr := instrumentation.NewInstrumentationWithRegisterer("fitbridge", "server", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})
	rdbCtx, rdbCancel := context.WithTimeout(ctx, 2*time.Second)
	defer rdbCancel()
	if err := rdb.Ping(rdbCtx).Err(); err != nil {
		log.Errorf("failed to ping redis: %s", err)
	} else {
		log.Debugln("redis ping ok")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitbridge-backend")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	var (
		aiClient ai.Client
		aiModel  string
		aiApiKey string
	)
	switch cfg.AIProvider {
	case ai.ProviderOpenAI:
		aiModel, aiApiKey = cfg.OpenAIModel, params.OpenAIApiKey
		aiClient = ai.NewOpenAIClient(tracedHttpClient, cfg.OpenAIBaseURL, aiApiKey, aiModel)
	case ai.ProviderDeepseek:
		aiModel, aiApiKey = cfg.DeepseekModel, params.DeepseekApiKey
		aiClient = ai.NewOpenAIClient(tracedHttpClient, cfg.DeepseekBaseURL, aiApiKey, aiModel)
	case ai.ProviderMock:
		aiModel = ai.ProviderMock
		aiClient = ai.NewMockClient()
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
	aiService := ai.NewService(aiClient, cfg.AIProvider, aiModel, aiApiKey)
	log.Debugf("ai provider: %s, model: %s, ready: %t", cfg.AIProvider, aiModel, aiService.Ready())

	return &Server{
		config:      cfg,
		storage:     store,
		aiService:   aiService,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		// telemetry
		instr:        instr,
		promRegistry: promRegistry,
		otelShutdown: otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "OPTIONS")
	r.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")
	r.HandleFunc("/ping", s.handlePing).Methods("GET", "OPTIONS")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	aiHandler := ai.NewHandler(s.aiService, s.instr)
	aiRouter := r.PathPrefix("/api/ai").Subrouter()
	aiRouter.Use(middleware.RateLimit(reqRateLimiter, "ai", s.config.AIRateLimitAllowedPerMin))
	aiRouter.HandleFunc("/generate", aiHandler.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-plan")
	aiRouter.HandleFunc("/analyze", aiHandler.HandleAnalyze).Methods("POST", "OPTIONS").Name("analyze-progress")
	r.HandleFunc("/api/ai/status", aiHandler.HandleStatus).Methods("GET", "OPTIONS").Name("ai-status")

	plansHandler := aiplans.NewHandler(s.storage.Plans)
	plansRouter := r.PathPrefix("/api/ai/plans").Subrouter()
	plansRouter.HandleFunc("", plansHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-plan")
	plansRouter.HandleFunc("", plansHandler.HandleList).Methods("GET", "OPTIONS").Name("list-plans")
	plansRouter.HandleFunc("/{id}", plansHandler.HandleDeactivate).Methods("DELETE", "OPTIONS").Name("deactivate-plan")

	workoutHandler := workout.NewHandler(
		workout.NewService(s.storage.Workouts, s.storage.DailyLogs),
		s.instr,
	)
	workoutRouter := r.PathPrefix("/api/workout").Subrouter()
	workoutRouter.HandleFunc("/log", workoutHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout-log")
	workoutRouter.HandleFunc("/logs", workoutHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workout-logs")
	workoutRouter.HandleFunc("/logs/{id}", workoutHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout-log")
	workoutRouter.HandleFunc("/logs/{id}", workoutHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-workout-log")
	workoutRouter.HandleFunc("/stats", workoutHandler.HandleStats).Methods("GET", "OPTIONS").Name("workout-stats")

	dietHandler := diet.NewHandler(
		diet.NewService(s.storage.Meals, s.storage.DailyLogs),
		s.instr,
	)
	dietRouter := r.PathPrefix("/api/diet").Subrouter()
	dietRouter.HandleFunc("/log", dietHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-meal-log")
	dietRouter.HandleFunc("/logs", dietHandler.HandleList).Methods("GET", "OPTIONS").Name("list-meal-logs")
	dietRouter.HandleFunc("/logs/today", dietHandler.HandleToday).Methods("GET", "OPTIONS").Name("today-meal-logs")
	dietRouter.HandleFunc("/logs/{id}", dietHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-meal-log")
	dietRouter.HandleFunc("/logs/{id}", dietHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-meal-log")
	dietRouter.HandleFunc("/stats", dietHandler.HandleStats).Methods("GET", "OPTIONS").Name("diet-stats")

	dailyLogHandler := dailylog.NewHandler(s.storage.DailyLogs)
	dailyRouter := r.PathPrefix("/api/daily").Subrouter()
	dailyRouter.HandleFunc("/log", dailyLogHandler.HandleApply).Methods("POST", "OPTIONS").Name("apply-daily-log")
	dailyRouter.HandleFunc("/logs", dailyLogHandler.HandleList).Methods("GET", "OPTIONS").Name("list-daily-logs")

	streaksHandler := streaks.NewHandler(s.storage.Streaks)
	streaksRouter := r.PathPrefix("/api/streaks").Subrouter()
	streaksRouter.HandleFunc("", streaksHandler.HandleList).Methods("GET", "OPTIONS").Name("list-streaks")
	streaksRouter.HandleFunc("/{category}/increment", streaksHandler.HandleIncrement).Methods("POST", "OPTIONS").Name("increment-streak")
	streaksRouter.HandleFunc("/{category}/reset", streaksHandler.HandleReset).Methods("POST", "OPTIONS").Name("reset-streak")

	usersHandler := users.NewHandler(s.storage.Users)
	r.HandleFunc("/api/user/profile", usersHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/api/user/profile", usersHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-profile")

	chatHandler := chat.NewHandler(s.aiService, s.instr)
	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.Use(middleware.RateLimit(reqRateLimiter, "chat", s.config.AIRateLimitAllowedPerMin))
	chatRouter.HandleFunc("/send", chatHandler.HandleSend).Methods("POST", "OPTIONS").Name("chat-send")
	chatRouter.HandleFunc("/stream", chatHandler.HandleStream).Methods("POST", "OPTIONS").Name("chat-stream")
	chatRouter.HandleFunc("/suggestions", chatHandler.HandleSuggestions).Methods("GET", "OPTIONS").Name("chat-suggestions")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.instr))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.instr))
	r.Use(middleware.Cors())
	r.Use(middleware.Identity("/api/chat"))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respBytes, err := json.Marshal(struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}{
		Name:    "FitBridge Backend",
		Version: s.versionInfo,
		Status:  "running",
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respBytes, err := json.Marshal(struct {
		Status            string `json:"status"`
		Timestamp         string `json:"timestamp"`
		AIProvider        string `json:"ai_provider"`
		DatabaseConnected bool   `json:"database_connected"`
	}{
		Status:            "healthy",
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		AIProvider:        s.aiService.Provider(),
		DatabaseConnected: !s.storage.Mock(),
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONResponseOK(w, `{"pong":true}`)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.instr.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	s.storage.Close()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	shutdownErr := multierr.Combine(
		s.httpServer.Shutdown(ctx),
		s.metricsHttpServer.Shutdown(ctx),
	)
	if shutdownErr != nil {
		log.Errorf(" >>> failed to gracefully shutdown http servers: %s", shutdownErr)
	}
	log.Warnln("server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.instr.GaugeRequests.Add(1)
	case http.StateClosed:
		s.instr.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
