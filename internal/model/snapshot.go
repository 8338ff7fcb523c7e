package model

import "time"

type BatchKind string

const (
	BatchFetch  BatchKind = "FETCH"
	BatchUpload BatchKind = "UPLOAD"
)

type BatchStatus string

const (
	BatchIdle      BatchStatus = "IDLE"
	BatchRunning   BatchStatus = "RUNNING"
	BatchCompleted BatchStatus = "COMPLETED"
)

type BatchSnapshot struct {
	Kind       BatchKind    `json:"kind"`
	Status     BatchStatus  `json:"status"`
	Message    string       `json:"message"`
	Percent    float64      `json:"percent"`
	Total      int          `json:"total"`
	Succeeded  int          `json:"succeeded"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt *time.Time   `json:"finished_at"`
	Shorts     []ShortVideo `json:"shorts,omitempty"`
}
