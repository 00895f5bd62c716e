package store

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- mapCreateError Tests ---

func txCanceled(codes ...string) error {
	reasons := make([]types.CancellationReason, 0, len(codes))
	for _, code := range codes {
		reasons = append(reasons, types.CancellationReason{Code: aws.String(code)})
	}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}

func TestMapCreateError_Nil(t *testing.T) {
	if err := mapCreateError(nil, 0); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestMapCreateError_EntityConditionFailed(t *testing.T) {
	err := mapCreateError(txCanceled("None", "ConditionalCheckFailed"), 1)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMapCreateError_ConstraintConditionFailed(t *testing.T) {
	err := mapCreateError(txCanceled("ConditionalCheckFailed", "None"), 1)
	if !errors.Is(err, ErrConstraintViolated) {
		t.Errorf("expected ErrConstraintViolated, got %v", err)
	}
}

func TestMapCreateError_NoConstraints(t *testing.T) {
	err := mapCreateError(txCanceled("ConditionalCheckFailed"), 0)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMapCreateError_UnrelatedError(t *testing.T) {
	cause := errors.New("throttled")
	err := mapCreateError(cause, 0)
	if !errors.Is(err, cause) {
		t.Errorf("expected original error, got %v", err)
	}
}

// --- constraintItem Tests ---

func TestConstraintItem(t *testing.T) {
	item := constraintItem(ConstraintPut{
		PK: "abc123",
		Attributes: map[string]string{
			"user_id":   "u1",
			"entity_id": "e1",
		},
	})

	if v, ok := item["pk"].(*types.AttributeValueMemberS); !ok || v.Value != "abc123" {
		t.Errorf("expected pk 'abc123', got %v", item["pk"])
	}
	if v, ok := item["sk"].(*types.AttributeValueMemberS); !ok || v.Value != constraintRow {
		t.Errorf("expected sk %q, got %v", constraintRow, item["sk"])
	}
	if v, ok := item["user_id"].(*types.AttributeValueMemberS); !ok || v.Value != "u1" {
		t.Errorf("expected user_id 'u1', got %v", item["user_id"])
	}
	if v, ok := item["entity_id"].(*types.AttributeValueMemberS); !ok || v.Value != "e1" {
		t.Errorf("expected entity_id 'e1', got %v", item["entity_id"])
	}
}

// --- Config Tests ---

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.validate()
	if cfg.ConstraintTable != "hearth_constraints" {
		t.Errorf("expected default constraint table, got %q", cfg.ConstraintTable)
	}
}

func TestConfigValidate_KeepsOverride(t *testing.T) {
	cfg := Config{ConstraintTable: "custom"}
	cfg.validate()
	if cfg.ConstraintTable != "custom" {
		t.Errorf("expected 'custom', got %q", cfg.ConstraintTable)
	}
}
