package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client against the OpenAI API (or any
// OpenAI-compatible endpoint via a custom BaseURL). It also carries
// the vision and file-asset surfaces the media engine consumes.
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient creates a new client
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Complete sends a prompt and returns the raw text response
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	return c.chat(ctx, openai.ChatCompletionRequest{
		Model:       c.model(req.Model),
		Messages:    messages,
		MaxTokens:   c.maxTokens(req.MaxTokens),
		Temperature: req.Temperature,
	})
}

// DescribeImage runs a vision prompt over raw image bytes. The image
// travels inline as a data URL; no upload step is involved.
func (c *OpenAIClient) DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	imageURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	return c.chat(ctx, openai.ChatCompletionRequest{
		Model: c.model(""),
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		MaxTokens: c.maxTokens(0),
	})
}

// UploadFile uploads raw bytes to the file-asset service and returns
// the asset id. Processing continues server-side after upload.
func (c *OpenAIClient) UploadFile(ctx context.Context, name string, data []byte) (string, error) {
	file, err := c.client.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    name,
		Bytes:   data,
		Purpose: openai.PurposeAssistants,
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	return file.ID, nil
}

// FileStatus returns the raw processing status of an uploaded asset
func (c *OpenAIClient) FileStatus(ctx context.Context, id string) (string, error) {
	file, err := c.client.GetFile(ctx, id)
	if err != nil {
		return "", fmt.Errorf("file status: %w", err)
	}
	return file.Status, nil
}

// DescribeFile runs an extraction prompt over a processed asset
func (c *OpenAIClient) DescribeFile(ctx context.Context, prompt, id string) (string, error) {
	return c.chat(ctx, openai.ChatCompletionRequest{
		Model: c.model(""),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s\n\nUploaded asset: %s", prompt, id),
			},
		},
		MaxTokens: c.maxTokens(0),
	})
}

func (c *OpenAIClient) chat(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) model(override string) string {
	if override != "" {
		return override
	}
	if c.config.Model != "" {
		return c.config.Model
	}
	return openai.GPT4oMini
}

func (c *OpenAIClient) maxTokens(override int) int {
	if override > 0 {
		return override
	}
	if c.config.MaxTokens > 0 {
		return c.config.MaxTokens
	}
	return 2000
}
