package dto

import "time"

type ReportStolenRequest struct {
	Region            string    `json:"region"`
	OccurredAt        time.Time `json:"occurred_at"`
	IsTimeApproximate bool      `json:"is_time_approximate"`
	Location          string    `json:"location"`
	Circumstances     string    `json:"circumstances"`
	AdditionalDetails string    `json:"additional_details"`
}

type ResolveCaseRequest struct {
	Outcome string `json:"outcome"`
}
