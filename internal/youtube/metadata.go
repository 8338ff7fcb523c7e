package youtube

import "fmt"

// ProvenanceTag marks every upload made by this tool.
const ProvenanceTag = "YTUPLOADER"

// ComposeDescription appends the uploader signature below a divider.
func ComposeDescription(description, signature string) string {
	return description + "\n\n---\n" + signature
}

// WithProvenanceTag returns the tag set with the provenance tag present
// exactly once. The input slice is not modified.
func WithProvenanceTag(tags []string) []string {
	out := make([]string, 0, len(tags)+1)
	seen := false
	for _, tag := range tags {
		if tag == ProvenanceTag {
			if seen {
				continue
			}
			seen = true
		}
		out = append(out, tag)
	}

	if !seen {
		out = append(out, ProvenanceTag)
	}

	return out
}

// WatchURL builds the public watch link for a remote video ID. Used only for
// human-readable summaries.
func WatchURL(remoteID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", remoteID)
}
