package model

type JobType string

const (
	JobReUpload JobType = "RE_UPLOAD"
	JobLocal    JobType = "LOCAL"
)

// Job is one unit of an upload batch. A re-upload job carries the remote video
// ID to fetch first; a local job points at a user-owned file. Jobs are
// immutable once handed to the runner, and list order decides both processing
// order and schedule slot.
type Job struct {
	Type        JobType `json:"type"`
	SourceID    string  `json:"source_id"`
	SourcePath  string  `json:"source_path"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// JobOutcome is recorded only for jobs whose upload succeeded.
type JobOutcome struct {
	Title    string
	RemoteID string
}
