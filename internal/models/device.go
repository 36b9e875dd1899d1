package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceStatus is the lifecycle state of a registered device.
type DeviceStatus string

const (
	DeviceStatusNormal     DeviceStatus = "NORMAL"
	DeviceStatusStolen     DeviceStatus = "STOLEN"
	DeviceStatusRecovered  DeviceStatus = "RECOVERED"
	DeviceStatusFalseAlarm DeviceStatus = "FALSE_ALARM"
)

// Device is a phone registered by its owner, identified by IMEI.
type Device struct {
	ID                     uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID                uuid.UUID    `gorm:"type:uuid;not null;index" json:"owner_id"`
	IMEI                   string       `gorm:"size:15;not null;uniqueIndex" json:"imei"`
	Make                   string       `gorm:"size:100;not null" json:"make"`
	ModelName              string       `gorm:"size:100;not null" json:"model_name"`
	Color                  string       `gorm:"size:50" json:"color"`
	StorageCapacity        string       `gorm:"size:20" json:"storage_capacity"`
	DistinguishingFeatures string       `gorm:"type:text" json:"distinguishing_features,omitempty"`
	Status                 DeviceStatus `gorm:"size:20;not null;default:'NORMAL'" json:"status"`
	RegisteredAt           time.Time    `gorm:"autoCreateTime" json:"registered_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
	Owner                  User         `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Device) TableName() string {
	return "devices"
}

// Description gives a short human-readable summary for notifications
// and verification results.
func (d *Device) Description() string {
	s := d.Make + " " + d.ModelName
	if d.Color != "" {
		s += ", " + d.Color
	}
	if d.StorageCapacity != "" {
		s += ", " + d.StorageCapacity
	}
	return s
}
