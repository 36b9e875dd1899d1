package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceCondition describes the state of a found device as reported by
// the finder.
type DeviceCondition string

const (
	ConditionPerfect    DeviceCondition = "PERFECT"
	ConditionGood       DeviceCondition = "GOOD"
	ConditionFair       DeviceCondition = "FAIR"
	ConditionPoor       DeviceCondition = "POOR"
	ConditionNotWorking DeviceCondition = "NOT_WORKING"
	ConditionUnknown    DeviceCondition = "UNKNOWN"
)

// ValidCondition reports whether c is a known device condition.
func ValidCondition(c DeviceCondition) bool {
	switch c {
	case ConditionPerfect, ConditionGood, ConditionFair, ConditionPoor,
		ConditionNotWorking, ConditionUnknown:
		return true
	}
	return false
}

// ReturnPreference is how the finder wants to hand the device back.
type ReturnPreference string

const (
	ReturnViaPolice     ReturnPreference = "POLICE"
	ReturnAnonymousChat ReturnPreference = "ANONYMOUS_CHAT"
	ReturnDirectContact ReturnPreference = "DIRECT_CONTACT"
	ReturnOther         ReturnPreference = "OTHER"
)

// ValidReturnPreference reports whether p is a known return preference.
func ValidReturnPreference(p ReturnPreference) bool {
	switch p {
	case ReturnViaPolice, ReturnAnonymousChat, ReturnDirectContact, ReturnOther:
		return true
	}
	return false
}

// FoundReport is a finder's submission. The linked case/device fields
// are weak references populated by the matcher; deleting the referenced
// record nulls them rather than deleting the report, except for the
// explicit device-deletion cascade handled in storage.
type FoundReport struct {
	ID                 uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaseIDHint         string           `gorm:"size:30" json:"case_id_hint,omitempty"`
	IMEIHint           string           `gorm:"size:15" json:"imei_hint,omitempty"`
	Description        string           `gorm:"type:text" json:"description,omitempty"`
	FoundAt            time.Time        `gorm:"not null" json:"found_at"`
	LocationFound      string           `gorm:"type:text;not null" json:"location_found"`
	Condition          DeviceCondition  `gorm:"size:20;not null;default:'UNKNOWN'" json:"condition"`
	ReturnPreference   ReturnPreference `gorm:"size:20;not null" json:"return_preference"`
	FinderName         string           `gorm:"size:100" json:"finder_name,omitempty"`
	FinderEmail        string           `gorm:"size:254" json:"finder_email,omitempty"`
	FinderPhone        string           `gorm:"size:20" json:"finder_phone,omitempty"`
	MessageToOwner     string           `gorm:"type:text" json:"message_to_owner,omitempty"`
	LinkedCaseID       *uuid.UUID       `gorm:"type:uuid;index" json:"linked_case_id,omitempty"`
	LinkedDeviceID     *uuid.UUID       `gorm:"type:uuid;index" json:"linked_device_id,omitempty"`
	IsProcessed        bool             `gorm:"default:false" json:"is_processed"`
	SubmittedAt        time.Time        `gorm:"autoCreateTime" json:"submitted_at"`
	LinkedCase         *TheftCase       `gorm:"foreignKey:LinkedCaseID;constraint:OnDelete:SET NULL" json:"-"`
	LinkedDevice       *Device          `gorm:"foreignKey:LinkedDeviceID;constraint:OnDelete:SET NULL" json:"-"`
}

func (FoundReport) TableName() string {
	return "found_reports"
}
