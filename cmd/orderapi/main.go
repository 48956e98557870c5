package main

import (
	"context"
	"time"

	"github.com/groveshop/storefront/config"
	"github.com/groveshop/storefront/internal/app"
	"github.com/groveshop/storefront/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	orderAPI := app.NewOrderAPI(sigCtx, cfg)

	orderAPI.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	orderAPI.Close(ctx)
}
