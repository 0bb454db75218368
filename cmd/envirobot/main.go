package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envirobot/envirobot/internal/api"
	"github.com/envirobot/envirobot/internal/config"
	"github.com/envirobot/envirobot/internal/pkg/covidtracker"
	"github.com/envirobot/envirobot/internal/pkg/groq"
	"github.com/envirobot/envirobot/internal/pkg/logger"
	"github.com/envirobot/envirobot/internal/pkg/store"
	"github.com/envirobot/envirobot/internal/pkg/store/xpgx"
	"github.com/envirobot/envirobot/internal/service/chat"
	"github.com/envirobot/envirobot/internal/service/etl"
	"github.com/envirobot/envirobot/internal/service/resolver"
)

func main() {
	ctx := context.Background()
	defer logger.Sync()

	cfg, err := config.Load(os.Getenv("ENVIROBOT_CONFIG"))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	pool, err := xpgx.Connect(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	st := store.NewStore(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Fatal(ctx, err)
	}

	covidClient := covidtracker.NewClient(cfg.Covid.Timeout, covidtracker.WithBaseURL(cfg.Covid.BaseURL))

	etlService := etl.NewService(st, covidClient, cfg.GHG.CSVPath)
	if ghgRows, covidRows, err := etlService.Run(ctx); err != nil {
		// a cold start with dead sources still serves whatever the store holds
		logger.Errorf(ctx, "initial etl: %s", err.Error())
	} else {
		logger.Infof(ctx, "initial etl complete: ghg_rows-%d, covid_rows-%d", ghgRows, covidRows)
	}

	var live covidtracker.Client
	if cfg.Covid.LiveEnabled {
		live = covidClient
	}
	resolverService := resolver.NewService(st, live)

	var groqClient groq.Client
	if cfg.Groq.Key != "" {
		groqClient = groq.NewClient(cfg.Groq.Key, groq.WithBaseURL(cfg.Groq.BaseURL), groq.WithModel(cfg.Groq.Model))
	}
	chatService := chat.NewService(resolverService, groqClient)

	apiService, err := api.NewAPIService(chatService, etlService)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go apiService.Serve(cfg.Server.Addr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := apiService.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}
