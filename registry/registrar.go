package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hearthlabs/hearth/access"
	"github.com/hearthlabs/hearth/ident"
	"github.com/hearthlabs/hearth/internal/keys"
	"github.com/hearthlabs/hearth/store"
)

// Tables is the subset of store operations the registrar needs.
type Tables interface {
	Get(ctx context.Context, table, partition, row string) (*store.Item, error)
	GetConstraint(ctx context.Context, pk string) (*store.Item, error)
	Create(ctx context.Context, entity store.Entity, constraints ...store.ConstraintPut) error
}

// Registrar creates device and beacon entities and assigns them to
// their registering user.
type Registrar struct {
	tables Tables
	index  *access.Index
	logger *slog.Logger
}

// New creates a registrar over the given tables and ownership index.
func New(tables Tables, index *access.Index, logger *slog.Logger) *Registrar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registrar{
		tables: tables,
		index:  index,
		logger: logger,
	}
}

// RegisterInput carries the device attributes supplied at registration.
type RegisterInput struct {
	// Identifier is the external fingerprint the device supplies,
	// unique per user. Required.
	Identifier string

	Alias        string
	Manufacturer string
	Model        string
	Endpoints    []Endpoint
}

// RegisterDevice creates a new device for userID and returns its id.
//
// A blank identifier and a duplicate (user, identifier) pair both
// surface as 400-class RequestErrors. Fingerprint uniqueness is
// enforced by a conditional constraint record written in the same
// transaction as the device, so two racing registrations cannot both
// succeed; the existence pre-check only spares a transaction on the
// common duplicate path.
func (r *Registrar) RegisterDevice(ctx context.Context, userID string, in RegisterInput) (string, error) {
	if strings.TrimSpace(in.Identifier) == "" {
		return "", access.BadRequest("device identifier is required")
	}

	fingerprintPK := keys.FingerprintPK(userID, in.Identifier)
	_, err := r.tables.GetConstraint(ctx, fingerprintPK)
	if err == nil {
		return "", access.BadRequest("Device already exists.")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	id, err := ident.Allocate(ctx, r.deviceExists)
	if err != nil {
		return "", err
	}

	device := Device{
		ID:           id,
		Identifier:   in.Identifier,
		Alias:        in.Alias,
		Manufacturer: in.Manufacturer,
		Model:        in.Model,
		RegisteredAt: time.Now().UTC(),
	}
	if device.Alias == "" {
		device.Alias = defaultAlias
	}
	if len(in.Endpoints) > 0 {
		blob, err := json.Marshal(in.Endpoints)
		if err != nil {
			return "", fmt.Errorf("serialize endpoints: %w", err)
		}
		device.Endpoints = string(blob)
	}

	err = r.tables.Create(ctx, device, store.ConstraintPut{
		PK: fingerprintPK,
		Attributes: map[string]string{
			"user_id":    userID,
			"identifier": in.Identifier,
			"entity_id":  id,
		},
	})
	if errors.Is(err, store.ErrConstraintViolated) {
		return "", access.BadRequest("Device already exists.")
	}
	if err != nil {
		return "", err
	}

	if err := r.index.Assign(ctx, userID, access.KindDevice, id); err != nil {
		return "", err
	}

	r.logger.Info("registered device",
		"user", userID,
		"deviceId", id,
	)
	return id, nil
}

// RegisterBeacon creates a new beacon for userID and returns its id.
func (r *Registrar) RegisterBeacon(ctx context.Context, userID string) (string, error) {
	id, err := ident.Allocate(ctx, r.beaconExists)
	if err != nil {
		return "", err
	}

	beacon := Beacon{
		ID:           id,
		RegisteredAt: time.Now().UTC(),
	}
	if err := r.tables.Create(ctx, beacon); err != nil {
		return "", err
	}

	if err := r.index.Assign(ctx, userID, access.KindBeacon, id); err != nil {
		return "", err
	}

	r.logger.Info("registered beacon",
		"user", userID,
		"beaconId", id,
	)
	return id, nil
}

// BeaconInfo is the listing projection of a beacon.
type BeaconInfo struct {
	ID           string
	RegisteredAt time.Time
}

// ListBeacons returns every beacon the user is assigned to, in
// arbitrary order. Assignments pointing at a missing beacon record are
// skipped rather than failing the listing.
func (r *Registrar) ListBeacons(ctx context.Context, userID string) ([]BeaconInfo, error) {
	ids, err := r.index.ListOwned(ctx, userID, access.KindBeacon)
	if err != nil {
		return nil, err
	}

	infos := make([]BeaconInfo, 0, len(ids))
	for _, id := range ids {
		item, err := r.tables.Get(ctx, BeaconsTable, id, beaconRow)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		var beacon Beacon
		if err := item.Unmarshal(&beacon); err != nil {
			return nil, err
		}
		infos = append(infos, BeaconInfo{
			ID:           id,
			RegisteredAt: beacon.RegisteredAt,
		})
	}
	return infos, nil
}

// deviceExists probes global device id existence for the allocator.
func (r *Registrar) deviceExists(ctx context.Context, id string) (bool, error) {
	return r.entityExists(ctx, DevicesTable, id, deviceRow)
}

// beaconExists probes global beacon id existence for the allocator.
func (r *Registrar) beaconExists(ctx context.Context, id string) (bool, error) {
	return r.entityExists(ctx, BeaconsTable, id, beaconRow)
}

func (r *Registrar) entityExists(ctx context.Context, table, partition, row string) (bool, error) {
	_, err := r.tables.Get(ctx, table, partition, row)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
