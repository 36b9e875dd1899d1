package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus is the lifecycle state of a theft case. Resolution is
// one-way: cases never return to ACTIVE.
type CaseStatus string

const (
	CaseStatusActive         CaseStatus = "ACTIVE"
	CaseStatusOwnerRecovered CaseStatus = "OWNER_RECOVERED"
	CaseStatusFinderReturned CaseStatus = "FINDER_RETURNED"
	CaseStatusFalseAlarm     CaseStatus = "RESOLVED_FALSE_ALARM"
)

// IsResolution reports whether s is a terminal case status.
func (s CaseStatus) IsResolution() bool {
	switch s {
	case CaseStatusOwnerRecovered, CaseStatusFinderReturned, CaseStatusFalseAlarm:
		return true
	}
	return false
}

// DeviceStatus maps a terminal case status onto the device status the
// resolution implies.
func (s CaseStatus) DeviceStatus() DeviceStatus {
	if s == CaseStatusFalseAlarm {
		return DeviceStatusFalseAlarm
	}
	return DeviceStatusRecovered
}

// Region codes for the region-of-theft field.
var Regions = map[string]string{
	"AD": "Adamaoua",
	"CE": "Center",
	"ES": "East",
	"FN": "Far North",
	"LT": "Littoral",
	"NO": "North",
	"NW": "North-West",
	"OU": "West",
	"SU": "South",
	"SW": "South-West",
	"UN": "Unknown/Other",
}

// ValidRegion reports whether code is one of the fixed region codes.
func ValidRegion(code string) bool {
	_, ok := Regions[code]
	return ok
}

// TheftCase is a theft report tied to exactly one device. The CaseID is
// assigned once at first persistence and never changes.
type TheftCase struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaseID            string     `gorm:"size:30;not null;uniqueIndex" json:"case_id"`
	DeviceID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"device_id"`
	Region            string     `gorm:"size:2;not null" json:"region"`
	OccurredAt        time.Time  `gorm:"not null" json:"occurred_at"`
	IsTimeApproximate bool       `gorm:"default:true" json:"is_time_approximate"`
	Location          string     `gorm:"size:255;not null" json:"location"`
	Circumstances     string     `gorm:"type:text;not null" json:"circumstances"`
	AdditionalDetails string     `gorm:"type:text" json:"additional_details,omitempty"`
	Status            CaseStatus `gorm:"size:30;not null;default:'ACTIVE'" json:"status"`
	ReportedAt        time.Time  `gorm:"autoCreateTime" json:"reported_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Device            Device     `gorm:"foreignKey:DeviceID" json:"-"`
}

func (TheftCase) TableName() string {
	return "theft_cases"
}
