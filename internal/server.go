package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/trainmate/trainmate-api/internal/auth"
	"github.com/trainmate/trainmate-api/internal/categories"
	"github.com/trainmate/trainmate-api/internal/challenges"
	"github.com/trainmate/trainmate-api/internal/config"
	"github.com/trainmate/trainmate-api/internal/exercises"
	"github.com/trainmate/trainmate-api/internal/goals"
	"github.com/trainmate/trainmate-api/internal/middleware"
	"github.com/trainmate/trainmate-api/internal/physical"
	"github.com/trainmate/trainmate-api/internal/telemetry/metrics"
	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
	"github.com/trainmate/trainmate-api/internal/trainings"
	"github.com/trainmate/trainmate-api/internal/users"
	"github.com/trainmate/trainmate-api/internal/water"
	"github.com/trainmate/trainmate-api/internal/workouts"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	fsClient    *firestore.Client
	redisClient *redis.Client
	authService *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	fsClient, err := firestore.NewClient(ctx, params.Config.FirestoreProjectID)
	if err != nil {
		return nil, fmt.Errorf("new firestore client: %w", err)
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: params.Config.FirestoreProjectID,
	})
	if err != nil {
		return nil, fmt.Errorf("new firebase app: %w", err)
	}
	fbAuthClient, err := fbApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("new firebase auth client: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "trainmate-backend")
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		fsClient:    fsClient,
		redisClient: rdb,
		authService: auth.NewService(fbAuthClient, rdb, auth.DefaultTTL),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	categoriesRepo := categories.NewRepo(s.fsClient)
	exercisesRepo := exercises.NewRepo(s.fsClient)
	trainingsRepo := trainings.NewRepo(s.fsClient)
	workoutsRepo := workouts.NewRepo(s.fsClient)
	physicalRepo := physical.NewRepo(s.fsClient)
	challengesRepo := challenges.NewRepo(s.fsClient)
	goalsRepo := goals.NewRepo(s.fsClient)
	waterRepo := water.NewRepo(s.fsClient)
	usersRepo := users.NewRepo(s.fsClient)

	recalculator := trainings.NewRecalculator(trainingsRepo, exercisesRepo, s.metricsManager)
	ranker := trainings.NewRanker(trainingsRepo, exercisesRepo, s.metricsManager)
	evaluator := challenges.NewEvaluator(
		challengesRepo,
		physicalRepo,
		workoutsRepo,
		trainingsRepo,
		exercisesRepo,
		categoriesRepo,
		s.metricsManager,
	)

	categoriesHandler := categories.NewHandler(categoriesRepo)
	r.HandleFunc("/categories", categoriesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-categories")
	r.HandleFunc("/categories", categoriesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-category")
	r.HandleFunc("/categories/{id}", categoriesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-category")
	r.HandleFunc("/categories/{id}", categoriesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-category")

	exercisesHandler := exercises.NewHandler(exercisesRepo, categoriesRepo, recalculator)
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/get-all", exercisesHandler.HandleListPublic).Methods("GET", "OPTIONS").Name("list-public-exercises")
	r.HandleFunc("/exercises/category/{categoryId}", exercisesHandler.HandleListByCategory).Methods("GET", "OPTIONS").Name("list-category-exercises")
	r.HandleFunc("/exercises/{id}", exercisesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-exercise")
	r.HandleFunc("/exercises/{id}", exercisesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-exercise")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	trainingsHandler := trainings.NewHandler(trainingsRepo, exercisesRepo, ranker)
	r.Handle(
		"/exercises/popular",
		middleware.RateLimit(
			reqRateLimiter,
			"popular-exercises",
			s.config.PopularRateLimitAllowedPerMin,
			s.metricsManager,
		)(http.HandlerFunc(trainingsHandler.HandlePopular)),
	).Methods("GET", "OPTIONS").Name("popular-exercises")
	r.HandleFunc("/trainings", trainingsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-trainings")
	r.HandleFunc("/trainings", trainingsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-training")
	r.HandleFunc("/trainings/{id}", trainingsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-training")
	r.HandleFunc("/trainings/{id}", trainingsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-training")

	workoutsHandler := workouts.NewHandler(workoutsRepo, trainingsRepo, evaluator)
	r.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", workoutsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-workout")

	physicalHandler := physical.NewHandler(physicalRepo, evaluator)
	r.HandleFunc("/physical-data", physicalHandler.HandleList).Methods("GET", "OPTIONS").Name("list-physical-data")
	r.HandleFunc("/physical-data", physicalHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-physical-data")

	challengesHandler := challenges.NewHandler(challengesRepo, evaluator)
	r.HandleFunc("/challenges/{domain}", challengesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-challenges")
	r.HandleFunc("/challenges", challengesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("create-challenges")

	goalsHandler := goals.NewHandler(goalsRepo)
	r.HandleFunc("/goals", goalsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals", goalsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals/{id}/complete", goalsHandler.HandleComplete).Methods("PUT", "OPTIONS").Name("complete-goal")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-goal")

	waterHandler := water.NewHandler(waterRepo)
	r.HandleFunc("/water-intake", waterHandler.HandleList).Methods("GET", "OPTIONS").Name("list-water-intakes")
	r.HandleFunc("/water-intake", waterHandler.HandleAdd).Methods("POST", "OPTIONS").Name("add-water-intake")
	r.HandleFunc("/water-intake/daily", waterHandler.HandleGetDaily).Methods("GET", "OPTIONS").Name("daily-water-intake")

	usersHandler := users.NewHandler(usersRepo, evaluator)
	r.HandleFunc("/users", usersHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-user")
	r.HandleFunc("/users/info", usersHandler.HandleGetInfo).Methods("GET", "OPTIONS").Name("get-user-info")

	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"pong","version":"` + s.versionInfo + `"}`))
	}).Methods("GET", "OPTIONS").Name("ping")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.fsClient != nil {
		if err := s.fsClient.Close(); err != nil {
			log.Errorf("failed to close firestore client: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
