package db

import (
	"context"
	"testing"

	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/dialect"
)

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), dialect.Postgres, config.DatabaseConfig{})
	if err == nil {
		t.Fatal("expected error for empty DSN")
	}
}
