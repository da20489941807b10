package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shopmind/shopmind/config"
	"github.com/shopmind/shopmind/internal/app"
	"github.com/shopmind/shopmind/internal/restapi"
	"github.com/shopmind/shopmind/internal/webserver"
)

var (
	cfile    = flag.String("c", "shopmind.yml", "config file path")
	initdb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer  = flag.Bool("v", false, "print version and exit")
	buildVer = "dev"
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("shopmind", buildVer)
		return
	}

	// .env values feed the config loader's environment overrides
	_ = godotenv.Load()

	appConfig := config.LoadConfig(*cfile)

	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application.StartBackgroundJobs(ctx)

	ws := webserver.Init(appConfig)
	restapi.Register(restapi.Deps{
		Catalog: application.CatalogService(),
		Orders:  application.OrderService(),
		Chat:    application.ChatResponder(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.L().Error("web server stopped", zap.Error(err))
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := ws.Stop(shutdownCtx); err != nil {
		zap.L().Error("web server shutdown error", zap.Error(err))
	}
}
