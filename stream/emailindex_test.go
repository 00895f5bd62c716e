package stream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hearthlabs/hearth/access"
	"github.com/hearthlabs/hearth/internal/memtable"
	"github.com/hearthlabs/hearth/store"
	"github.com/hearthlabs/hearth/stream"
)

func userEvent(eventName, userID, oldEmail, newEmail string) events.DynamoDBEvent {
	record := events.DynamoDBEventRecord{
		EventID:   "evt-1",
		EventName: eventName,
		Change: events.DynamoDBStreamRecord{
			Keys: map[string]events.DynamoDBAttributeValue{
				"pk": events.NewStringAttribute(userID),
				"sk": events.NewStringAttribute("USER"),
			},
			NewImage: map[string]events.DynamoDBAttributeValue{},
			OldImage: map[string]events.DynamoDBAttributeValue{},
		},
	}
	if newEmail != "" {
		record.Change.NewImage["email"] = events.NewStringAttribute(newEmail)
	}
	if oldEmail != "" {
		record.Change.OldImage["email"] = events.NewStringAttribute(oldEmail)
	}
	return events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{record}}
}

func TestHandleUserChange_Insert(t *testing.T) {
	ctx := context.Background()
	mem := memtable.New()
	handler := stream.NewHandler(mem, nil)
	index := access.NewIndex(mem)

	if err := handler.HandleUserChange(ctx, userEvent("INSERT", "u1", "", "Foo@Bar.com")); err != nil {
		t.Fatalf("handle: %v", err)
	}

	userID, err := index.UserIDByEmail(ctx, "foo@bar.com")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if userID != "u1" {
		t.Errorf("expected 'u1', got %q", userID)
	}
}

func TestHandleUserChange_EmailChanged(t *testing.T) {
	ctx := context.Background()
	mem := memtable.New()
	handler := stream.NewHandler(mem, nil)
	index := access.NewIndex(mem)

	if err := handler.HandleUserChange(ctx, userEvent("INSERT", "u1", "", "old@bar.com")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := handler.HandleUserChange(ctx, userEvent("MODIFY", "u1", "old@bar.com", "new@bar.com")); err != nil {
		t.Fatalf("modify: %v", err)
	}

	if _, err := index.UserIDByEmail(ctx, "old@bar.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected stale entry removed, got err=%v", err)
	}
	userID, err := index.UserIDByEmail(ctx, "new@bar.com")
	if err != nil {
		t.Fatalf("resolve new: %v", err)
	}
	if userID != "u1" {
		t.Errorf("expected 'u1', got %q", userID)
	}
}

func TestHandleUserChange_UnchangedEmailIsNoOp(t *testing.T) {
	ctx := context.Background()
	mem := memtable.New()
	handler := stream.NewHandler(mem, nil)

	// Case-only change normalizes to the same index entry.
	if err := handler.HandleUserChange(ctx, userEvent("MODIFY", "u1", "foo@bar.com", "FOO@bar.com")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := mem.Count(access.EmailIndexTable); got != 0 {
		t.Errorf("expected no index writes, got %d entries", got)
	}
}

func TestHandleUserChange_IgnoresRemoveEvents(t *testing.T) {
	ctx := context.Background()
	mem := memtable.New()
	handler := stream.NewHandler(mem, nil)

	if err := handler.HandleUserChange(ctx, userEvent("REMOVE", "u1", "foo@bar.com", "")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := mem.Count(access.EmailIndexTable); got != 0 {
		t.Errorf("expected no index writes, got %d entries", got)
	}
}

func TestHandleUserChange_MissingUserKey(t *testing.T) {
	ctx := context.Background()
	mem := memtable.New()
	handler := stream.NewHandler(mem, nil)

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{{
		EventID:   "evt-2",
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{
			NewImage: map[string]events.DynamoDBAttributeValue{
				"email": events.NewStringAttribute("foo@bar.com"),
			},
		},
	}}}
	if err := handler.HandleUserChange(ctx, event); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := mem.Count(access.EmailIndexTable); got != 0 {
		t.Errorf("expected no index writes, got %d entries", got)
	}
}
