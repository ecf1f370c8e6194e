package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/gradeflow/gradeflow/internal/common"
	"github.com/gradeflow/gradeflow/internal/config"
	"github.com/gradeflow/gradeflow/internal/scanapi"
	"github.com/gradeflow/gradeflow/internal/storage"
)

// initStorage opens the roster database and applies migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/gradeflow/gradeflow.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initScanClient builds the HTTP client for the scan services from config.
func initScanClient() (*scanapi.Client, error) {
	baseURL := viper.GetString("service.url")
	if baseURL == "" {
		return nil, common.NewUserError(
			"scan service URL is not configured; set service.url in the config file or GRADEFLOW_SERVICE_URL",
			common.ErrMissingConfig)
	}

	return scanapi.NewClient(scanapi.Config{
		BaseURL:    baseURL,
		APIKey:     viper.GetString("service.api_key"),
		Mode:       viper.GetString("service.mode"),
		PromptText: viper.GetString("service.prompt_text"),
	})
}
