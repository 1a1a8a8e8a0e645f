package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"book-lender/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// マイグレーション適用用の小さなCLI。CIとローカルの両方から使う。
func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		logger.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(context.Background(), &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: *dir,
	})
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	logger.Info("migration applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
}
