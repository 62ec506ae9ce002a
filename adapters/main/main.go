package main

// 单独启动 websocket 服务，不带交互界面

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sealdice/wildseal/adapters"
	"github.com/sealdice/wildseal/wildcard"
	"github.com/sealdice/wildseal/wildcard/types"
)

func main() {
	configPath := flag.StringP("config", "c", "", "config file (yaml or json)")
	listen := flag.StringP("listen", "l", "", "listen address, overrides config")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	log := zap.S().Named("main")

	cfg := wildcard.DefaultConfig()
	if *configPath != "" {
		loaded, err := wildcard.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	engine := wildcard.NewEngine(cfg)
	srv := adapters.NewWSServer(cfg.Listen, engine, cfg.RateLimit, cfg.RateBurst)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("%s %s", types.APPNAME, types.VERSION.String())
	if err := srv.Serve(ctx); err != nil {
		log.Errorf("serve: %v", err)
		os.Exit(1)
	}
	log.Infof("processed %d requests", engine.Processed())
}
