package models

import "time"

// RequestMetrics summarises the requests observed by the client.
type RequestMetrics struct {
	Requests        uint64        `json:"requests"`
	Failures        uint64        `json:"failures"`
	AverageDuration time.Duration `json:"average_duration"`
	Logins          uint64        `json:"logins"`
	Logouts         uint64        `json:"logouts"`
}
