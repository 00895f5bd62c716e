//go:build e2e

// Live tests exercise the store against real DynamoDB tables.
// Run with: go test -tags=e2e -v ./store/...
package store_test

import (
	"context"
	"errors"
	"testing"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/hearthlabs/hearth/store"
)

func liveStore(t *testing.T, ctx context.Context) (*store.Store, string) {
	t.Helper()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		t.Fatalf("load AWS config: %v", err)
	}
	client := dynamodb.NewFromConfig(awsCfg)

	suffix := uuid.New().String()[:8]
	table := "hearth-live-widgets-" + suffix

	s := store.New(client, store.Config{
		ConstraintTable: "hearth-live-constraints-" + suffix,
	})
	if err := s.EnsureTable(ctx, table); err != nil {
		t.Fatalf("ensure table: %v", err)
	}
	if err := s.EnsureTable(ctx, s.ConstraintTable()); err != nil {
		t.Fatalf("ensure constraint table: %v", err)
	}
	return s, table
}

func TestLiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, table := liveStore(t, ctx)

	w := widget{ID: uuid.New().String(), Label: "live"}
	if err := s.Create(ctx, w); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Second create with the same key must conflict.
	if err := s.Create(ctx, w); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	item, err := s.Get(ctx, table, w.ID, "WIDGET")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got widget
	if err := item.Unmarshal(&got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Label != "live" {
		t.Errorf("expected label 'live', got %q", got.Label)
	}

	items, err := s.QueryPartition(ctx, table, w.ID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	if err := s.Delete(ctx, table, w.ID, "WIDGET"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, table, w.ID, "WIDGET"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
