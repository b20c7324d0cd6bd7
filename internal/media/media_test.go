package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"veracity/internal/model"
)

// fakeVision implements VisionClient
type fakeVision struct {
	response string
	err      error
}

func (v *fakeVision) DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	return v.response, v.err
}

// fakeAssets implements AssetClient with a scripted status sequence
type fakeAssets struct {
	uploadErr   error
	statuses    []string
	statusErr   error
	description string
	describeErr error

	uploads      int
	uploadedName string
	statusCalls  int
}

func (a *fakeAssets) UploadFile(ctx context.Context, name string, data []byte) (string, error) {
	a.uploads++
	a.uploadedName = name
	if a.uploadErr != nil {
		return "", a.uploadErr
	}
	return "file-123", nil
}

func (a *fakeAssets) FileStatus(ctx context.Context, id string) (string, error) {
	if a.statusErr != nil {
		return "", a.statusErr
	}
	idx := a.statusCalls
	a.statusCalls++
	if idx >= len(a.statuses) {
		idx = len(a.statuses) - 1
	}
	return a.statuses[idx], nil
}

func (a *fakeAssets) DescribeFile(ctx context.Context, prompt, id string) (string, error) {
	return a.description, a.describeErr
}

func fastConfig() Config {
	return Config{
		PollInterval: 1 * time.Millisecond,
		PollDeadline: 100 * time.Millisecond,
		FFmpegPath:   "/nonexistent/ffmpeg", // transcode fails, original bytes upload
	}
}

func TestEngine_ImageSynchronous(t *testing.T) {
	vision := &fakeVision{response: "  TEXT CONTENT: Breaking news headline  "}
	engine := NewEngine(vision, &fakeAssets{}, fastConfig())

	text, err := engine.Extract(context.Background(), model.MediaAsset{
		Kind:        model.MediaImage,
		ContentType: "image/png",
		Data:        []byte{0x89, 'P', 'N', 'G'},
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "TEXT CONTENT: Breaking news headline" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestEngine_ImageFailureIsFatal(t *testing.T) {
	vision := &fakeVision{err: errors.New("vision error")}
	engine := NewEngine(vision, &fakeAssets{}, fastConfig())

	_, err := engine.Extract(context.Background(), model.MediaAsset{Kind: model.MediaImage})
	if !errors.Is(err, ErrProcessingFailed) {
		t.Errorf("expected ErrProcessingFailed, got %v", err)
	}
}

func TestEngine_VideoReachesActive(t *testing.T) {
	assets := &fakeAssets{
		statuses:    []string{"processing", "processing", "active"},
		description: "TRANSCRIPT: someone makes a claim",
	}
	engine := NewEngine(&fakeVision{}, assets, fastConfig())

	text, err := engine.Extract(context.Background(), model.MediaAsset{
		Kind:     model.MediaVideo,
		Filename: "clip.mp4",
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "TRANSCRIPT: someone makes a claim" {
		t.Errorf("unexpected text: %q", text)
	}
	if assets.statusCalls < 3 {
		t.Errorf("expected at least 3 status checks, got %d", assets.statusCalls)
	}
}

func TestEngine_VideoFailedState(t *testing.T) {
	assets := &fakeAssets{statuses: []string{"processing", "failed"}}
	engine := NewEngine(&fakeVision{}, assets, fastConfig())

	_, err := engine.Extract(context.Background(), model.MediaAsset{Kind: model.MediaVideo})
	if !errors.Is(err, ErrProcessingFailed) {
		t.Errorf("expected ErrProcessingFailed, got %v", err)
	}
}

func TestEngine_VideoTimeout(t *testing.T) {
	assets := &fakeAssets{statuses: []string{"processing"}}
	cfg := fastConfig()
	cfg.PollDeadline = 10 * time.Millisecond
	engine := NewEngine(&fakeVision{}, assets, cfg)

	_, err := engine.Extract(context.Background(), model.MediaAsset{Kind: model.MediaVideo})
	if !errors.Is(err, ErrProcessingTimeout) {
		t.Errorf("expected ErrProcessingTimeout, got %v", err)
	}
}

func TestEngine_UploadErrorIsFatal(t *testing.T) {
	assets := &fakeAssets{uploadErr: errors.New("service rejected upload")}
	engine := NewEngine(&fakeVision{}, assets, fastConfig())

	_, err := engine.Extract(context.Background(), model.MediaAsset{Kind: model.MediaVideo})
	if !errors.Is(err, ErrProcessingFailed) {
		t.Errorf("expected ErrProcessingFailed, got %v", err)
	}
}

func TestEngine_AudioTranscodeFailureUploadsOriginal(t *testing.T) {
	assets := &fakeAssets{
		statuses:    []string{"active"},
		description: "TRANSCRIPT: spoken claim",
	}
	engine := NewEngine(&fakeVision{}, assets, fastConfig())

	// ffmpeg is unavailable; the original bytes still go up
	text, err := engine.Extract(context.Background(), model.MediaAsset{
		Kind:     model.MediaAudio,
		Filename: "voice.mp3",
		Data:     []byte("mp3-bytes"),
	})
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "TRANSCRIPT: spoken claim" {
		t.Errorf("unexpected text: %q", text)
	}
	if assets.uploads != 1 {
		t.Errorf("expected 1 upload, got %d", assets.uploads)
	}
	if assets.uploadedName != "voice.mp3" {
		t.Errorf("expected original filename on transcode failure, got %q", assets.uploadedName)
	}
}

func TestEngine_UnsupportedKind(t *testing.T) {
	engine := NewEngine(&fakeVision{}, &fakeAssets{}, fastConfig())

	_, err := engine.Extract(context.Background(), model.MediaAsset{Kind: "document"})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestStateFromStatus(t *testing.T) {
	cases := map[string]AssetState{
		"processed": StateActive,
		"active":    StateActive,
		"ACTIVE":    StateActive,
		"error":     StateFailed,
		"failed":    StateFailed,
		"FAILED":    StateFailed,
		"uploaded":  StateProcessing,
		"pending":   StateProcessing,
		"":          StateProcessing,
	}
	for status, want := range cases {
		if got := stateFromStatus(status); got != want {
			t.Errorf("stateFromStatus(%q) = %s, want %s", status, got, want)
		}
	}
}

func TestWavName(t *testing.T) {
	cases := map[string]string{
		"voice.mp3":  "voice.wav",
		"voice":      "voice.wav",
		"a.b.c.flac": "a.b.c.wav",
		".hidden":    ".hidden.wav",
		"noext.":     "noext.wav",
	}
	for in, want := range cases {
		if got := wavName(in); got != want {
			t.Errorf("wavName(%q) = %q, want %q", in, got, want)
		}
	}
}
