package dto

import "time"

type VerifyRequest struct {
	IMEI string `json:"imei"`
}

const (
	VerificationStolen        = "STOLEN"
	VerificationClean         = "CLEAN"
	VerificationNotInRegistry = "NOT_IN_OUR_REGISTRY"
)

type DeviceSummary struct {
	Make            string `json:"make"`
	ModelName       string `json:"model_name"`
	Color           string `json:"color"`
	StorageCapacity string `json:"storage_capacity"`
}

type CaseSummary struct {
	CaseID     string    `json:"case_id"`
	Status     string    `json:"status"`
	ReportedAt time.Time `json:"reported_at"`
}

type VerificationResult struct {
	IMEI    string         `json:"imei"`
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Device  *DeviceSummary `json:"device,omitempty"`
	Case    *CaseSummary   `json:"case,omitempty"`
}
