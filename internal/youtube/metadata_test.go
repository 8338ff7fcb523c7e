package youtube

import (
	"strings"
	"testing"
)

func TestComposeDescription(t *testing.T) {
	got := ComposeDescription("my video", "@channel used YTUPLOADER")
	want := "my video\n\n---\n@channel used YTUPLOADER"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func countTag(tags []string, tag string) int {
	n := 0
	for _, t := range tags {
		if t == tag {
			n++
		}
	}
	return n
}

func TestWithProvenanceTag_Appends(t *testing.T) {
	tags := WithProvenanceTag([]string{"shorts", "gaming"})

	if countTag(tags, ProvenanceTag) != 1 {
		t.Errorf("expected provenance tag exactly once, got %v", tags)
	}
	if tags[0] != "shorts" || tags[1] != "gaming" {
		t.Errorf("expected caller tags preserved in order, got %v", tags)
	}
}

func TestWithProvenanceTag_AlreadyPresent(t *testing.T) {
	tags := WithProvenanceTag([]string{"shorts", ProvenanceTag, ProvenanceTag})

	if countTag(tags, ProvenanceTag) != 1 {
		t.Errorf("expected provenance tag exactly once, got %v", tags)
	}
}

func TestWithProvenanceTag_DoesNotModifyInput(t *testing.T) {
	in := []string{"a", "b"}
	_ = WithProvenanceTag(in)

	if len(in) != 2 || in[0] != "a" || in[1] != "b" {
		t.Errorf("input slice modified: %v", in)
	}
}

func TestWatchURL(t *testing.T) {
	got := WatchURL("dQw4w9WgXcQ")
	if !strings.HasPrefix(got, "https://www.youtube.com/watch?v=") || !strings.HasSuffix(got, "dQw4w9WgXcQ") {
		t.Errorf("unexpected watch URL: %s", got)
	}
}
