package model

import "strings"

// MediaKind identifies the type of a submitted media asset
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// KindFromContentType maps a MIME type to a MediaKind.
// Returns false for anything the extraction engine cannot handle.
func KindFromContentType(contentType string) (MediaKind, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage, true
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo, true
	case strings.HasPrefix(contentType, "audio/"):
		return MediaAudio, true
	default:
		return "", false
	}
}

// MediaAsset holds raw media bytes pending text extraction.
// The extraction engine owns the asset for its lifetime; nothing
// else reads the bytes after extraction completes or fails.
type MediaAsset struct {
	Kind        MediaKind `json:"kind"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
}

// RawInput is a single claim submission. Exactly one of Text, URL, or
// Media is the primary input; Text may additionally accompany Media as
// user-supplied context. Immutable once received.
type RawInput struct {
	Text  string      `json:"text,omitempty"`
	URL   string      `json:"url,omitempty"`
	Media *MediaAsset `json:"media,omitempty"`
}

// StructuredClaim is the normalized form of a raw claim: a declarative
// statement plus the entities, time frame, and context needed to
// research it. Produced once per request and never mutated.
type StructuredClaim struct {
	Claim         string   `json:"claim"`
	Entities      []string `json:"entities"`
	TimePeriod    string   `json:"time_period"`
	Context       string   `json:"context"`
	OriginalInput string   `json:"original_input,omitempty"`
}
