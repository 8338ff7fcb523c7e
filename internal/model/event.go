package model

type EventType string

const (
	EventStatusUpdate   EventType = "STATUS_UPDATE"
	EventProgressUpdate EventType = "PROGRESS_UPDATE"
	EventFetchComplete  EventType = "FETCH_COMPLETE"
	EventFetchFailed    EventType = "FETCH_FAILED"
	EventUploadComplete EventType = "UPLOAD_COMPLETE"
)

// BatchEvent crosses from the background worker to whoever is observing the
// batch. The worker is the only producer and the poll loop the only consumer;
// nothing else is shared between the two sides.
type BatchEvent struct {
	Type    EventType
	Message string
	Percent float64
	Items   []ShortVideo
}

// ShortVideo is one listing entry from the channel fetch.
type ShortVideo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"`
	Duration    int    `json:"duration_seconds"`
}
