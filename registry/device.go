// Package registry creates device and beacon entities and lists them.
package registry

import (
	"time"

	"github.com/hearthlabs/hearth/store"
)

// Table names for registered entities.
const (
	DevicesTable = "hearth_devices"
	BeaconsTable = "hearth_beacons"

	deviceRow = "DEVICE"
	beaconRow = "BEACON"
)

// defaultAlias names a device whose registration carried no alias.
const defaultAlias = "New device"

// ContactAccess describes how an endpoint contact may be used.
type ContactAccess int

const (
	AccessNone ContactAccess = iota
	AccessRead
	AccessWrite
)

// Contact is a single named value exposed by a device endpoint.
type Contact struct {
	Name                string        `json:"name"`
	DataType            string        `json:"dataType"`
	Access              ContactAccess `json:"access"`
	NoiseReductionDelta *float64      `json:"noiseReductionDelta,omitempty"`
}

// Endpoint groups the contacts a device exposes on one channel.
type Endpoint struct {
	Channel  string    `json:"channel"`
	Contacts []Contact `json:"contacts"`
}

// Device is a registered device entity. Identity is immutable once
// created; attributes may change via later upserts.
type Device struct {
	ID           string    `dynamodbav:"id"`
	Identifier   string    `dynamodbav:"identifier"`
	Alias        string    `dynamodbav:"alias"`
	Manufacturer string    `dynamodbav:"manufacturer,omitempty"`
	Model        string    `dynamodbav:"model,omitempty"`
	Endpoints    string    `dynamodbav:"endpoints,omitempty"`
	RegisteredAt time.Time `dynamodbav:"registered_at"`
}

func (d Device) TableName() string { return DevicesTable }
func (d Device) Key() store.PK     { return store.Key(d.ID, deviceRow) }

// Beacon is a registered beacon entity.
type Beacon struct {
	ID           string    `dynamodbav:"id"`
	RegisteredAt time.Time `dynamodbav:"registered_at"`
}

func (b Beacon) TableName() string { return BeaconsTable }
func (b Beacon) Key() store.PK     { return store.Key(b.ID, beaconRow) }
