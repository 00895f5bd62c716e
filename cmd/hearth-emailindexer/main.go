// Command hearth-emailindexer runs the email index stream handler as
// an AWS Lambda function attached to the users table stream.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/hearthlabs/hearth/config"
	"github.com/hearthlabs/hearth/store"
	"github.com/hearthlabs/hearth/stream"
)

func main() {
	logger := config.NewLogger(config.LoggingConfig{
		Level:  os.Getenv("HEARTH_LOG_LEVEL"),
		Format: os.Getenv("HEARTH_LOG_FORMAT"),
	})
	slog.SetDefault(logger)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	st := store.New(dynamodb.NewFromConfig(awsCfg), store.Config{
		ConstraintTable: os.Getenv("HEARTH_CONSTRAINT_TABLE"),
	})
	handler := stream.NewHandler(st, logger)

	lambda.Start(handler.HandleUserChange)
}
