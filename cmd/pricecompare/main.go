package main

import (
	"context"
	"time"

	"github.com/niksmo/pricecompare/config"
	"github.com/niksmo/pricecompare/internal/app"
	"github.com/niksmo/pricecompare/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	priceCompare := app.New(sigCtx, cfg)

	priceCompare.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	priceCompare.Close(ctx)
}
