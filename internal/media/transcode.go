package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Transcoder converts audio to a canonical WAV container via ffmpeg.
// Callers treat failure as non-fatal and fall back to the original
// bytes.
type Transcoder struct {
	path string
}

// NewTranscoder creates a transcoder using the given ffmpeg binary
func NewTranscoder(path string) *Transcoder {
	if path == "" {
		path = "ffmpeg"
	}
	return &Transcoder{path: path}
}

// ToWAV transcodes audio bytes to WAV over stdin/stdout
func (t *Transcoder) ToWAV(ctx context.Context, data []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, t.path, "-hide_banner", "-loglevel", "error", "-i", "pipe:0", "-f", "wav", "pipe:1")
	cmd.Stdin = bytes.NewReader(data)

	var out bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %v: %s", err, errBuf.String())
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output")
	}
	return out.Bytes(), nil
}
