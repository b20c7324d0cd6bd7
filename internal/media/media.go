// Package media converts image, video, and audio assets into extracted
// text. Images are handled synchronously in-process; video and audio
// run through an upload-and-poll state machine against the asset
// service (LOCAL -> UPLOADING -> PROCESSING -> ACTIVE | FAILED).
package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veracity/internal/model"
)

// Fatal extraction errors. Unextractable media fails the whole
// request; no partial verdict is attempted.
var (
	ErrProcessingTimeout = errors.New("media processing timeout")
	ErrProcessingFailed  = errors.New("media processing failed")
	ErrUnsupportedType   = errors.New("unsupported media type")
)

// AssetState is the lifecycle state of an uploaded asset
type AssetState string

const (
	StateLocal      AssetState = "LOCAL"
	StateUploading  AssetState = "UPLOADING"
	StateProcessing AssetState = "PROCESSING"
	StateActive     AssetState = "ACTIVE"
	StateFailed     AssetState = "FAILED"
)

// VisionClient extracts text from inline image bytes in one call
type VisionClient interface {
	DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

// AssetClient is the upload service used for video and audio
type AssetClient interface {
	UploadFile(ctx context.Context, name string, data []byte) (string, error)
	FileStatus(ctx context.Context, id string) (string, error)
	DescribeFile(ctx context.Context, prompt, id string) (string, error)
}

// Extractor converts one kind of media asset into text
type Extractor interface {
	Kind() model.MediaKind
	Extract(ctx context.Context, asset model.MediaAsset) (string, error)
}

// Config bounds the upload-and-poll loop
type Config struct {
	PollInterval time.Duration
	PollDeadline time.Duration
	FFmpegPath   string
}

// DefaultConfig returns the standard polling bounds
func DefaultConfig() Config {
	return Config{
		PollInterval: 2 * time.Second,
		PollDeadline: 5 * time.Minute,
		FFmpegPath:   "ffmpeg",
	}
}

// Engine dispatches extraction over the closed set of media kinds
type Engine struct {
	extractors map[model.MediaKind]Extractor
}

// NewEngine wires one extraction strategy per media kind
func NewEngine(vision VisionClient, assets AssetClient, cfg Config) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.PollDeadline <= 0 {
		cfg.PollDeadline = 5 * time.Minute
	}

	extractors := []Extractor{
		newImageExtractor(vision),
		newVideoExtractor(assets, cfg),
		newAudioExtractor(assets, cfg),
	}

	byKind := make(map[model.MediaKind]Extractor, len(extractors))
	for _, ex := range extractors {
		byKind[ex.Kind()] = ex
	}
	return &Engine{extractors: byKind}
}

// Extract converts the asset into a single text blob. The engine owns
// the asset bytes for the duration of the call; they are not retained
// afterwards.
func (e *Engine) Extract(ctx context.Context, asset model.MediaAsset) (string, error) {
	ex, ok := e.extractors[asset.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, asset.Kind)
	}
	return ex.Extract(ctx, asset)
}

// stateFromStatus maps the asset service's raw status strings onto the
// lifecycle states the poll loop understands.
func stateFromStatus(status string) AssetState {
	switch status {
	case "processed", "active", "ACTIVE":
		return StateActive
	case "error", "failed", "FAILED":
		return StateFailed
	default:
		return StateProcessing
	}
}
