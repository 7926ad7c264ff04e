package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/aduanas/casengine/internal/api"
	"github.com/aduanas/casengine/internal/catalog"
	"github.com/aduanas/casengine/internal/classify"
	"github.com/aduanas/casengine/internal/config"
	"github.com/aduanas/casengine/internal/convert"
	"github.com/aduanas/casengine/internal/service"
	"github.com/aduanas/casengine/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := store.New(cfg.Database.URL)
	if err != nil {
		logger.Fatal("unable to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Catalogs are loaded once and shared read-only.
	cat := catalog.Default()
	classifier := classify.New(cat)
	converter := convert.New(classifier)
	clock := service.SystemClock()

	svc := service.NewCaseService(db, converter, clock, logger)
	handler := api.NewHandler(svc, cat, clock, logger)
	router := api.NewRouter(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}
