package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"soothely/config"
	"soothely/cron"
	"soothely/database"
	commitmentRepo "soothely/database/repository/commitment"
	providerRepo "soothely/database/repository/provider"
	quoteRepo "soothely/database/repository/quote"
	rulesRepo "soothely/database/repository/rules"
	"soothely/handlers"
	"soothely/routes"
	"soothely/services/availability"
	"soothely/services/booking"
	"soothely/services/notification"
	"soothely/services/quote"
	"soothely/services/rules"
	"soothely/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	providers := providerRepo.NewMongoProviderRepo()
	commitments := commitmentRepo.NewMongoCommitmentRepo()
	quotes := quoteRepo.NewMongoQuoteRepo()
	ruleStore := rulesRepo.NewMongoRulesRepo()

	snapshotCache := rules.NewSnapshotCache(ruleStore, utils.GetCacheClient())
	rulesService := rules.NewService(ruleStore, snapshotCache)
	availService := availability.NewService(providers, commitments, snapshotCache)

	queueClient := cron.NewQueueClient()
	defer queueClient.Close()
	sessionStore := booking.NewSessionStore(utils.GetSessionCacheClient())
	bookingService := booking.NewService(sessionStore, availService, providers, commitments, snapshotCache, queueClient)
	quoteService := quote.NewService(quotes, snapshotCache)

	worker := cron.StartWorker(notification.NewLogSender())
	defer worker.Shutdown()

	router := routes.SetupRouter(routes.Handlers{
		Availability: handlers.NewAvailabilityHandler(availService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Quote:        handlers.NewQuoteHandler(quoteService),
		Rules:        handlers.NewRulesHandler(rulesService),
		Provider:     handlers.NewProviderHandler(providers),
	})

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
