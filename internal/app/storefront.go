package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/groveshop/storefront/config"
	"github.com/groveshop/storefront/internal/adapter/cartstore"
	"github.com/groveshop/storefront/internal/adapter/httphandler"
	"github.com/groveshop/storefront/internal/adapter/orderapi"
	"github.com/groveshop/storefront/internal/adapter/storage"
	"github.com/groveshop/storefront/internal/adapter/view"
	"github.com/groveshop/storefront/internal/core/service"
)

const orderSubmitTimeout = 10 * time.Second

// A Storefront wires the shop pages, the session cart and the checkout
// flow against the cart store, the catalog database and the order API.
type Storefront struct {
	ctx        context.Context
	cfg        config.Config
	cartKV     cartstore.RedisKV
	sqldb      storage.SQLDB
	httpServer httphandler.HTTPServer
}

func NewStorefront(ctx context.Context, cfg config.Config) *Storefront {
	app := &Storefront{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initAdapters()

	return app
}

func (app *Storefront) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *Storefront) initAdapters() {
	const op = "Storefront.initAdapters"

	cartKV, err := cartstore.NewRedisKV(
		app.ctx, app.cfg.Storefront.CartStoreAddr,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.cartKV = cartKV

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	renderer, err := view.NewRenderer()
	if err != nil {
		app.fallDown(op, err)
	}

	cartRepo := cartstore.NewRepository(cartKV)
	catalogRepo := storage.NewCatalogRepository(sqldb)
	gateway := orderapi.NewClient(
		app.cfg.Storefront.OrderAPIURL, orderSubmitTimeout,
	)

	cartSvc := service.NewCartService(cartRepo)
	checkoutSvc := service.NewCheckoutService(cartRepo, gateway)

	apiMux := http.NewServeMux()
	httphandler.RegisterCart(apiMux, cartSvc)
	httphandler.RegisterCheckout(apiMux, checkoutSvc)
	httphandler.RegisterCatalog(apiMux, catalogRepo)

	pagesMux := http.NewServeMux()
	httphandler.RegisterPages(
		pagesMux, catalogRepo, cartSvc, checkoutSvc, renderer,
	)
	httphandler.RegisterStatic(pagesMux, app.cfg.Storefront.StaticDir)

	mux := http.NewServeMux()
	mux.Handle("/v1/", httphandler.AllowJSON(apiMux))
	mux.Handle("/", httphandler.RewriteIndex(pagesMux))

	handler := httphandler.WithSession(mux)
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.Storefront.HTTPServerAddr, handler,
	)
}

func (app *Storefront) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("storefront is running")
}

func (app *Storefront) Close(ctx context.Context) {
	slog.Info("storefront is closing...")

	app.httpServer.Close(ctx)
	app.cartKV.Close()
	app.sqldb.Close()

	slog.Info("storefront is closed")
}

func (app *Storefront) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
