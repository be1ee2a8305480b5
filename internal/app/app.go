package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/catalogfile"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/core/carousel"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	catalog    *catalog.Catalog
	producer   port.ActivityProducer
	session    *service.Session
	carousel   *carousel.Carousel
	httpServer httphandler.HTTPServer

	runCancel context.CancelFunc
	wg        sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCatalog()
	app.initActivityProducer()
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

	src := catalogfile.New(app.cfg.CatalogFile)
	products, categories, err := src.LoadCatalog(app.ctx)
	if err != nil {
		app.fallDown(op, err)
	}

	c, err := catalog.New(products, categories)
	if err != nil {
		app.fallDown(op, err)
	}
	app.catalog = c

	slog.Info("catalog is loaded", "op", op,
		"nProducts", c.Len(), "source", app.cfg.CatalogFile)
}

func (app *App) initActivityProducer() {
	const op = "App.initActivityProducer"

	brokerCfg := app.cfg.Broker
	if !brokerCfg.Enabled {
		slog.Info("activity stream is disabled", "op", op)
		return
	}

	tlsConfig, err := adapter.LoadClientTLS(adapter.TLSFiles{
		CAFile:   brokerCfg.TLS.CAFile,
		CertFile: brokerCfg.TLS.CertFile,
		KeyFile:  brokerCfg.TLS.KeyFile,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	serde := app.activitySerde(tlsConfig)

	producer, err := kafka.NewActivityProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			brokerCfg.SeedBrokers,
			brokerCfg.Topics.SessionActivity,
			tlsConfig,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) activitySerde(tlsConfig *tls.Config) schema.Serde {
	const op = "App.activitySerde"

	srOpts := []sr.ClientOpt{sr.URLs(app.cfg.Broker.SchemaRegistryURLs...)}
	if tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsConfig))
	}

	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.SessionActivity + "-value"
	serde, err := schema.NewSerdeActivityV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	return serde
}

func (app *App) initCoreService() {
	sessionCfg := app.cfg.Session

	opts := []service.Opt{
		service.CompareCapacityOpt(sessionCfg.CompareCapacity),
		service.NotificationTTLOpt(sessionCfg.NotificationTTL),
		service.PriceCeilingOpt(sessionCfg.PriceCeiling),
	}
	if app.producer != nil {
		opts = append(opts, service.ActivityRecorderOpt(app.producer))
	}
	app.session = service.New(app.catalog, opts...)

	app.carousel = carousel.New(app.slides(), app.cfg.Carousel.Interval)
}

func (app *App) slides() []carousel.Slide {
	if len(app.cfg.Carousel.Slides) == 0 {
		return carousel.DefaultSlides()
	}
	slides := make([]carousel.Slide, len(app.cfg.Carousel.Slides))
	for i, s := range app.cfg.Carousel.Slides {
		slides[i] = carousel.Slide{
			Title:    s.Title,
			Subtitle: s.Subtitle,
			ImageRef: s.ImageRef,
			CTA:      s.CTA,
			Badge:    s.Badge,
		}
	}
	return slides
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterSession(mux, app.session)
	httphandler.RegisterCarousel(mux, app.carousel)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	runCtx, cancel := context.WithCancel(app.ctx)
	app.runCancel = cancel

	if app.producer != nil {
		app.wg.Add(1)
		go app.producer.Run(runCtx, &app.wg)
	}

	app.wg.Add(1)
	go app.carousel.Run(runCtx, &app.wg)

	go app.httpServer.Run(stopFn)

	slog.Info("application is running", "sessionID", app.session.ID())
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.runCancel != nil {
		app.runCancel()
	}
	app.wg.Wait()

	app.session.Close()
	if app.producer != nil {
		app.producer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
