package app

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jmoiron/sqlx"

	server "github.com/admin/web-apps/banner-ai/internal/adapters/primary/http"
	bannerController "github.com/admin/web-apps/banner-ai/internal/adapters/primary/http/controllers/banner"
	checkoutController "github.com/admin/web-apps/banner-ai/internal/adapters/primary/http/controllers/checkout"
	healthcheckController "github.com/admin/web-apps/banner-ai/internal/adapters/primary/http/controllers/healthcheck"
	usageController "github.com/admin/web-apps/banner-ai/internal/adapters/primary/http/controllers/usage"
	alerterAdapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/alerter"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/gemini"
	kafkaAdapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/kafka"
	stripeAdapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/payment/stripe"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/web-apps/banner-ai/internal/adapters/secondary/storage/s3"
	"github.com/admin/web-apps/banner-ai/internal/ports/kafka"
	"github.com/admin/web-apps/banner-ai/internal/ports/repository"
	"github.com/admin/web-apps/banner-ai/internal/ports/service"
	usageRepo "github.com/admin/web-apps/banner-ai/internal/repository/usage"
	bannerUsecase "github.com/admin/web-apps/banner-ai/internal/usecases/banner"
	checkoutUsecase "github.com/admin/web-apps/banner-ai/internal/usecases/checkout"
	"github.com/admin/web-apps/banner-ai/internal/usecases/generation"
	usageUsecase "github.com/admin/web-apps/banner-ai/internal/usecases/usage"
)

type namedCloser struct {
	name string
	io.Closer
}

type Dependencies struct {
	HTTPServer *http.Server
	// Closers закрываются при остановке в обратном порядке
	Closers []namedCloser
}

func (d *Dependencies) addCloser(name string, c io.Closer) {
	d.Closers = append(d.Closers, namedCloser{name: name, Closer: c})
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (_ *Dependencies, err error) {
	deps := &Dependencies{}
	defer func() {
		// уже открытые подключения не должны утечь, если дальше что-то упало
		if err != nil {
			a.closeAll(deps)
		}
	}()

	checks := make(map[string]healthcheckController.Pinger)

	store, err := a.initUsageStore(ctx, deps, checks)
	if err != nil {
		return nil, fmt.Errorf("failed to init usage store: %w", err)
	}

	events := a.initKafka(deps)
	alerter := a.initAlerter()

	usageService := usageUsecase.New(store, events, a.Cfg.Usage.Limit, a.Log)

	controllers := []server.Controller{
		usageController.New(usageService, a.Log),
	}

	checkoutCtrl, err := a.initCheckout(alerter)
	if err != nil {
		return nil, fmt.Errorf("failed to init checkout: %w", err)
	}
	if checkoutCtrl != nil {
		controllers = append(controllers, checkoutCtrl)
	}

	bannerCtrl, err := a.initBanner(usageService, checks)
	if err != nil {
		return nil, fmt.Errorf("failed to init banner generation: %w", err)
	}
	if bannerCtrl != nil {
		controllers = append(controllers, bannerCtrl)
	}

	controllers = append(controllers, healthcheckController.New(a.Name, checks, a.Log))

	httpServer, err := server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
	if err != nil {
		return nil, fmt.Errorf("failed to init http server: %w", err)
	}
	deps.HTTPServer = httpServer

	return deps, nil
}

// initUsageStore выбирает бэкенд счётчиков по USAGE_BACKEND
func (a *App) initUsageStore(
	ctx context.Context,
	deps *Dependencies,
	checks map[string]healthcheckController.Pinger,
) (repository.IUsageRepo, error) {
	switch a.Cfg.Usage.Backend {
	case UsageBackendPostgres:
		db, err := a.initPostgres(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		persistenceLayer := pg.NewDB(db)
		deps.addCloser("postgres", persistenceLayer)
		checks["postgres"] = persistenceLayer
		return usageRepo.New(persistenceLayer, a.Log), nil

	case UsageBackendRedis:
		client, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Log.Info("redis connected successfully")
		store := redisAdapter.NewUsageStore(client, a.Cfg.Redis.KeyPrefix, a.Log)
		deps.addCloser("redis", store)
		checks["redis"] = store
		return store, nil

	default:
		a.Log.Warn("usage counters are kept in memory and reset on restart")
		return inmemory.NewUsageStore(), nil
	}
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres(ctx context.Context) (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initKafka события usage опциональны: без брокеров или при ошибке работаем без них
func (a *App) initKafka(deps *Dependencies) kafka.IUsageEventProducer {
	if a.Cfg.Kafka == nil || a.Cfg.Kafka.Brokers == "" {
		return nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka producer, usage events disabled", "error", err)
		return nil
	}
	deps.addCloser("kafka", producer)
	a.Log.Info("kafka producer created", "topic", a.Cfg.Kafka.Topic)
	return producer
}

// initAlerter алерты опциональны
func (a *App) initAlerter() service.IAlerterService {
	if !a.Cfg.Alerter.Enabled() {
		return nil
	}

	client, err := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log)
	if err != nil {
		a.Log.Warn("failed to init alerter, continuing without alerts", "error", err)
		return nil
	}
	return client
}

// initCheckout /create-checkout-session регистрируется только при настроенном Stripe
func (a *App) initCheckout(alerter service.IAlerterService) (server.Controller, error) {
	if !a.Cfg.Stripe.Enabled() {
		a.Log.Info("stripe is not configured, checkout disabled")
		return nil, nil
	}

	provider, err := stripeAdapter.NewProvider(a.Cfg.Stripe, a.Log)
	if err != nil {
		return nil, err
	}

	priceIDs := a.Cfg.Stripe.PriceIDs()
	if len(priceIDs) == 0 {
		a.Log.Warn("stripe is configured without price ids, every plan will be rejected")
	}

	checkoutService := checkoutUsecase.New(
		provider,
		priceIDs,
		a.Cfg.Stripe.SuccessURL,
		a.Cfg.Stripe.CancelURL,
		alerter, // может быть nil
		a.Log,
	)
	return checkoutController.New(checkoutService, a.Log), nil
}

// initBanner /generate и /styles регистрируются только при заданном GEMINI_API_KEY
func (a *App) initBanner(
	usageService *usageUsecase.Service,
	checks map[string]healthcheckController.Pinger,
) (server.Controller, error) {
	if !a.Cfg.Gemini.Enabled() {
		a.Log.Info("gemini api key is not set, server-side generation disabled")
		return nil, nil
	}

	catalog, err := generation.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	archive, err := a.initArchive(checks)
	if err != nil {
		return nil, err
	}

	bannerService := bannerUsecase.New(
		usageService,
		gemini.NewClient(a.Cfg.Gemini, a.Log),
		catalog,
		archive,
		a.Cfg.Generation.QuotaPolicy(),
		a.Cfg.Generation.Timeout,
		a.Log,
	)
	return bannerController.New(bannerService, a.Log), nil
}

// initArchive S3 архив баннеров опционален
func (a *App) initArchive(checks map[string]healthcheckController.Pinger) (service.IBannerArchive, error) {
	if !a.Cfg.S3.Enabled() {
		return nil, nil
	}

	minioClient, err := a.Cfg.S3.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to init s3: %w", err)
	}

	client := s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
	checks["s3"] = client
	a.Log.Info("s3 banner archive enabled", "bucket", a.Cfg.S3.Bucket)
	return s3Adapter.NewBannerArchive(client, a.Cfg.S3, a.Log), nil
}
