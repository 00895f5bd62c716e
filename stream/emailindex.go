// Package stream provides DynamoDB Streams handlers for index upkeep.
package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hearthlabs/hearth/access"
	"github.com/hearthlabs/hearth/store"
)

// Tables is the subset of store operations the handler needs.
type Tables interface {
	Upsert(ctx context.Context, entity store.Entity) error
	Delete(ctx context.Context, table, partition, row string) error
}

// Handler processes user table stream events to keep the email index
// in step with user profiles.
type Handler struct {
	tables Tables
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(tables Tables, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		tables: tables,
		logger: logger,
	}
}

// HandleUserChange processes a batch of user table stream records.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleUserChange(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord reindexes the email of one changed user profile.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != "INSERT" && record.EventName != "MODIFY" {
		return nil
	}

	userID := getStringAttr(record.Change.Keys, "pk")
	if userID == "" {
		return nil
	}

	oldEmail := access.NormalizeEmail(getStringAttr(record.Change.OldImage, "email"))
	newEmail := access.NormalizeEmail(getStringAttr(record.Change.NewImage, "email"))
	if oldEmail == newEmail {
		return nil
	}

	if oldEmail != "" {
		if err := h.tables.Delete(ctx, access.EmailIndexTable, oldEmail, access.EmailRow); err != nil {
			return fmt.Errorf("remove stale email index entry: %w", err)
		}
	}

	if newEmail != "" {
		entry := access.EmailIndexEntry{Email: newEmail, UserID: userID}
		if err := h.tables.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("write email index entry: %w", err)
		}
	}

	h.logger.Info("reindexed user email",
		"user", userID,
		"changed", newEmail != "",
	)
	return nil
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeString {
			return v.String()
		}
	}
	return ""
}
