// Command hearth-tables provisions every hearth table idempotently.
package main

import (
	"context"
	"flag"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/hearthlabs/hearth/access"
	"github.com/hearthlabs/hearth/config"
	"github.com/hearthlabs/hearth/registry"
	"github.com/hearthlabs/hearth/store"
)

func main() {
	configPath := flag.String("config", "hearth.yml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slogFatal(err)
	}
	logger := config.NewLogger(cfg.Logging)

	ctx := context.Background()

	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.AWS.Region != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.AWS.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	st := store.New(dynamodb.NewFromConfig(awsCfg), store.Config{
		ConstraintTable: cfg.Store.ConstraintTable,
	})

	tables := []string{
		access.UsersTable,
		access.EmailIndexTable,
		registry.DevicesTable,
		registry.BeaconsTable,
		st.ConstraintTable(),
	}
	for _, kind := range []access.Kind{access.KindDevice, access.KindBeacon, access.KindDashboard} {
		tables = append(tables, kind.AssignmentTable())
	}

	for _, table := range tables {
		if err := st.EnsureTable(ctx, table); err != nil {
			logger.Error("failed to ensure table", "table", table, "error", err)
			os.Exit(1)
		}
		logger.Info("table ready", "table", table)
	}
}

func slogFatal(err error) {
	// Config failed to load, so no configured logger exists yet.
	os.Stderr.WriteString("hearth-tables: " + err.Error() + "\n")
	os.Exit(1)
}
