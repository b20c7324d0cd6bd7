package media

import (
	"context"
	"fmt"
	"strings"

	"veracity/internal/model"
)

const imagePrompt = `Extract all visible text from this image. Include:
1. Any text visible in the image (signs, captions, documents, etc.)
2. Brief description of visual content if relevant to understanding the context
3. Any claims or statements being made

If there is no text, describe the visual content that might be relevant for fact-checking.

Format your response as:
TEXT CONTENT: [extracted text or "No text found"]
VISUAL CONTEXT: [brief description of relevant visual elements]`

// imageExtractor reads visible text and visual context from an image
// in one synchronous call. No upload step is involved.
type imageExtractor struct {
	vision VisionClient
}

func newImageExtractor(vision VisionClient) *imageExtractor {
	return &imageExtractor{vision: vision}
}

func (e *imageExtractor) Kind() model.MediaKind {
	return model.MediaImage
}

func (e *imageExtractor) Extract(ctx context.Context, asset model.MediaAsset) (string, error) {
	text, err := e.vision.DescribeImage(ctx, imagePrompt, asset.Data, asset.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: image extraction: %v", ErrProcessingFailed, err)
	}
	return strings.TrimSpace(text), nil
}
