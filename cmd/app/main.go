package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"DivYield/internal/di"
	"DivYield/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	checkOnly := flag.Bool("check", false, "validate the configuration and exit")
	flag.Parse()

	// the structured logger is built from this config; until then use log
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *checkOnly {
		fmt.Printf("config ok: provider=%s cache=%s port=%d\n", cfg.Provider.Type, cfg.Cache.Backend, cfg.Server.Port)
		return
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	err = app.Run()
	cleanup()
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
