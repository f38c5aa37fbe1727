package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/harun/dzapprove/internal/awsclient"
	"github.com/harun/dzapprove/internal/config"
	"github.com/harun/dzapprove/internal/handler"
	"github.com/harun/dzapprove/internal/logger"
	"github.com/harun/dzapprove/internal/metrics"
	"github.com/harun/dzapprove/pkg/sweep"
)

func main() {
	initContext := context.TODO()

	// Lambda configuration is environment-only
	cfg := config.FromEnv()

	zlog, err := logger.New(logger.Config{Level: cfg.Logging.Level, Console: true})
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}

	cat, pub, err := awsclient.Build(initContext, cfg)
	if err != nil {
		log.Fatalf("failed to initialize AWS clients: %s", err)
	}

	sweeper := sweep.NewSweeper(cat, pub, metrics.NewMetrics(), zlog.WithComponent("sweep"), sweep.Options{
		DomainID:        cfg.Catalog.DomainID,
		ProjectID:       cfg.Catalog.ProjectID,
		DecisionComment: cfg.Catalog.DecisionComment,
		Subject:         cfg.Notify.Subject,
		Message:         cfg.Notify.Message,
	})

	h := handler.New(sweeper, zlog.WithComponent("handler"))

	lambda.Start(h.Handle)
}
