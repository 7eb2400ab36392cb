package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/pricecompare/config"
	"github.com/niksmo/pricecompare/internal/adapter"
	"github.com/niksmo/pricecompare/internal/adapter/catalog"
	"github.com/niksmo/pricecompare/internal/adapter/httphandler"
	"github.com/niksmo/pricecompare/internal/adapter/kafka"
	"github.com/niksmo/pricecompare/internal/adapter/metrics"
	"github.com/niksmo/pricecompare/internal/adapter/storage"
	"github.com/niksmo/pricecompare/internal/core/port"
	"github.com/niksmo/pricecompare/internal/core/service"
	"github.com/niksmo/pricecompare/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type analytics struct {
	producer  *kafka.SearchEventsProducer
	eventsOut port.SearchEventsProducer
	proc      port.PopularSearchesProcessor
	view      port.PopularSearchesView
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	catalog    port.ProductsCatalog
	analytics  analytics
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCatalog()
	app.initAnalytics()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"
	log := slog.With("op", op)

	if app.cfg.Catalog.Source != config.CatalogSourcePostgres {
		app.catalog = catalog.NewMemoryCatalog(catalog.MockProducts())
		log.Info("catalog is loaded", "source", config.CatalogSourceMemory)
		return
	}

	sqlDB, err := storage.NewSQLDB(app.ctx, app.cfg.Catalog.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	defer sqlDB.Close()

	products, err := storage.NewProductsRepository(sqlDB).LoadProducts(app.ctx)
	if err != nil {
		app.fallDown(op, err)
	}

	app.catalog = catalog.NewMemoryCatalog(products)
	log.Info(
		"catalog is loaded",
		"source", config.CatalogSourcePostgres, "products", len(products),
	)
}

func (app *App) initAnalytics() {
	const op = "App.initAnalytics"

	broker := app.cfg.Broker
	if !broker.Enabled {
		slog.Info("search analytics is disabled", "op", op)
		return
	}

	tlsConfig, err := adapter.MakeTLSConfig(
		broker.TLS.CA, broker.TLS.Cert, broker.TLS.Key,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	kafka.ApplyTLS(tlsConfig)

	srOpts := []sr.ClientOpt{sr.URLs(broker.SchemaRegistryURLs...)}
	if tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	topic := broker.Topics.SearchEvents
	serde, err := schema.NewSerdeSearchEventV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaIdentifier(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewSearchEventsProducer(
		kafka.ProducerClientOpt(app.ctx, broker.SeedBrokers, topic, tlsConfig),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	group := broker.Consumers.PopularSearchesGroup
	proc, err := kafka.NewPopularSearchesProc(
		broker.SeedBrokers, topic, group, serde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewPopularSearchesView(broker.SeedBrokers, group)
	if err != nil {
		app.fallDown(op, err)
	}

	app.analytics = analytics{
		producer:  &producer,
		eventsOut: producer,
		proc:      proc,
		view:      view,
	}
}

func (app *App) initCoreService() {
	app.service = service.New(
		app.catalog,
		app.analytics.eventsOut,
		app.analytics.proc,
		app.analytics.view,
		service.Delays{
			Search:       app.cfg.SearchDelay,
			PriceHistory: app.cfg.HistoryDelay,
		},
	)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterSearch(mux, app.service, app.service)
	httphandler.RegisterProducts(mux, app.service, app.service, app.service)

	api := httphandler.AllowJSON(mux)

	root := http.NewServeMux()
	root.Handle("GET /metrics", metrics.Handler())
	root.Handle("/", metrics.Middleware(api))

	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, root, app.cfg.RequestTimeout,
	)
}

// Run starts the analytics components and the http server.
func (app *App) Run(stopFn context.CancelFunc) {
	app.service.Run(app.ctx, stopFn)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()
	if app.analytics.producer != nil {
		app.analytics.producer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
