package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/groveshop/storefront/config"
	"github.com/groveshop/storefront/internal/adapter/challenge"
	"github.com/groveshop/storefront/internal/adapter/httphandler"
	"github.com/groveshop/storefront/internal/adapter/kafka"
	"github.com/groveshop/storefront/internal/adapter/orderapi"
	"github.com/groveshop/storefront/internal/core/service"
	"github.com/groveshop/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

const turnstileTimeout = 5 * time.Second

// An OrderAPI wires the order intake endpoint against the bot-challenge
// provider and the order events topic.
type OrderAPI struct {
	ctx        context.Context
	cfg        config.Config
	producer   kafka.OrderPlacedProducer
	httpServer httphandler.HTTPServer
}

func NewOrderAPI(ctx context.Context, cfg config.Config) *OrderAPI {
	app := &OrderAPI{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initAdapters()

	return app
}

func (app *OrderAPI) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *OrderAPI) initAdapters() {
	const op = "OrderAPI.initAdapters"

	serde := app.initSerde()

	producer, err := kafka.NewOrderPlacedProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.OrderPlaced,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer

	verifier := challenge.NewTurnstile(
		app.cfg.OrderAPI.TurnstileURL,
		app.cfg.OrderAPI.TurnstileSecret,
		turnstileTimeout,
	)

	location, err := time.LoadLocation(app.cfg.OrderAPI.BusinessTimezone)
	if err != nil {
		app.fallDown(op, err)
	}

	orderSvc := service.NewOrderService(verifier, producer, location, nil)

	mux := http.NewServeMux()
	orderapi.RegisterOrderIntake(mux, orderSvc)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.OrderAPI.HTTPServerAddr, handler,
	)
}

func (app *OrderAPI) initSerde() schema.Serde {
	const op = "OrderAPI.initSerde"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.OrderPlaced + "-value"
	serde, err := schema.NewSerdeOrderPlacedV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	return serde
}

func (app *OrderAPI) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("order api is running")
}

func (app *OrderAPI) Close(ctx context.Context) {
	slog.Info("order api is closing...")

	app.httpServer.Close(ctx)
	app.producer.Close()

	slog.Info("order api is closed")
}

func (app *OrderAPI) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
