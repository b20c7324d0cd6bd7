package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"veracity/internal/model"
)

const videoPrompt = `Analyze this video and extract:
1. TRANSCRIPT: All spoken words and dialogue
2. VISUAL TEXT: Any text visible in the video (signs, captions, overlays, etc.)
3. KEY CLAIMS: Any factual claims or statements made

Format your response as:
TRANSCRIPT: [transcribed speech or "No speech detected"]
VISUAL TEXT: [visible text or "No text visible"]
KEY CLAIMS: [main claims to fact-check]`

const audioPrompt = `Transcribe this audio and extract:
1. FULL TRANSCRIPT: Complete transcription of all spoken words
2. KEY CLAIMS: Any factual statements or claims made
3. CONTEXT: Speaker information or context if identifiable

Format your response as:
TRANSCRIPT: [full transcription]
KEY CLAIMS: [main claims to fact-check]
CONTEXT: [relevant context]`

// uploadExtractor drives the upload-and-poll state machine shared by
// video and audio. Audio is transcoded to WAV first; transcode failure
// is non-fatal and the original bytes are uploaded instead.
type uploadExtractor struct {
	assets     AssetClient
	kind       model.MediaKind
	prompt     string
	transcoder *Transcoder
	cfg        Config
}

func newVideoExtractor(assets AssetClient, cfg Config) *uploadExtractor {
	return &uploadExtractor{
		assets: assets,
		kind:   model.MediaVideo,
		prompt: videoPrompt,
		cfg:    cfg,
	}
}

func newAudioExtractor(assets AssetClient, cfg Config) *uploadExtractor {
	return &uploadExtractor{
		assets:     assets,
		kind:       model.MediaAudio,
		prompt:     audioPrompt,
		transcoder: NewTranscoder(cfg.FFmpegPath),
		cfg:        cfg,
	}
}

func (e *uploadExtractor) Kind() model.MediaKind {
	return e.kind
}

func (e *uploadExtractor) Extract(ctx context.Context, asset model.MediaAsset) (string, error) {
	data := asset.Data
	name := asset.Filename
	if name == "" {
		name = "upload"
	}

	// LOCAL -> UPLOADING. Audio goes through a best-effort transcode
	// to a canonical container first.
	if e.transcoder != nil {
		if wav, err := e.transcoder.ToWAV(ctx, data); err == nil {
			data = wav
			name = wavName(name)
		}
	}

	id, err := e.assets.UploadFile(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", ErrProcessingFailed, e.kind, err)
	}

	// UPLOADING -> PROCESSING -> ACTIVE | FAILED. The deadline is
	// absolute: it does not reset across status checks.
	err = Poll(ctx, e.cfg.PollInterval, e.cfg.PollDeadline, func(ctx context.Context) (bool, error) {
		status, statusErr := e.assets.FileStatus(ctx, id)
		if statusErr != nil {
			return false, fmt.Errorf("%w: status check: %v", ErrProcessingFailed, statusErr)
		}
		switch stateFromStatus(status) {
		case StateActive:
			return true, nil
		case StateFailed:
			return false, fmt.Errorf("%w: asset entered FAILED state", ErrProcessingFailed)
		default:
			return false, nil
		}
	})
	if err != nil {
		if errors.Is(err, ErrDeadline) {
			return "", fmt.Errorf("%w: asset not ACTIVE within %s", ErrProcessingTimeout, e.cfg.PollDeadline)
		}
		return "", err
	}

	text, err := e.assets.DescribeFile(ctx, e.prompt, id)
	if err != nil {
		return "", fmt.Errorf("%w: extract %s: %v", ErrProcessingFailed, e.kind, err)
	}
	return strings.TrimSpace(text), nil
}

func wavName(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name + ".wav"
}
