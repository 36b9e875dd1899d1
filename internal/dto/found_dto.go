package dto

import "time"

type SubmitFoundReportRequest struct {
	CaseID           string    `json:"case_id"`
	IMEI             string    `json:"imei"`
	Description      string    `json:"description"`
	FoundAt          time.Time `json:"found_at"`
	LocationFound    string    `json:"location_found"`
	Condition        string    `json:"condition"`
	ReturnPreference string    `json:"return_preference"`
	FinderName       string    `json:"finder_name"`
	FinderEmail      string    `json:"finder_email"`
	FinderPhone      string    `json:"finder_phone"`
	MessageToOwner   string    `json:"message_to_owner"`
}

type SubmitFoundReportResponse struct {
	ReportID string `json:"report_id"`
	Matched  bool   `json:"matched"`
	Message  string `json:"message"`
	Warning  string `json:"warning,omitempty"`
}
