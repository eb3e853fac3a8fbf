package service

import (
	"context"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CompletionRequest describes one call to the text-completion service.
// Reasoning-class models take the combined instructions as a single user
// message and a budget that accounts for internal thinking tokens; standard
// models take a conventional system+user pair.
type CompletionRequest struct {
	Model         string
	System        string
	User          string
	SingleMessage bool
	MaxTokens     int64
	Reasoning     bool
}

// TextGenerator is the text-completion collaborator.
type TextGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// CompleteJSON requests a structured-output completion conforming to the
	// given JSON schema and returns the raw JSON payload.
	CompleteJSON(ctx context.Context, req CompletionRequest, schemaName string, schema any) (string, error)
}

// ImageGenerator is the image-synthesis collaborator. It returns a
// time-limited URL hosted by the upstream service.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// SpeechToText is the transcription collaborator.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, mimeType, language string) (string, error)
}

// GenerateSchema builds a strict JSON schema for structured outputs.
func GenerateSchema[T any]() any {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// openAIClient backs all three AI collaborators with the OpenAI API.
type openAIClient struct {
	client      openai.Client
	imageModel  string
	speechModel string
}

// NewOpenAIClient creates the OpenAI-backed text, image, and speech clients.
func NewOpenAIClient(apiKey, imageModel, speechModel string) (TextGenerator, ImageGenerator, SpeechToText, error) {
	if apiKey == "" {
		return nil, nil, nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	c := &openAIClient{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		imageModel:  imageModel,
		speechModel: speechModel,
	}
	return c, c, c, nil
}

func (c *openAIClient) buildParams(req CompletionRequest) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.SingleMessage {
		messages = []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.System + "\n\n" + req.User),
		}
	} else {
		messages = []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		}
	}
	params := openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(req.Model),
	}
	if req.Reasoning {
		// Reasoning models consume part of the budget internally before
		// producing visible output.
		params.MaxCompletionTokens = openai.Int(req.MaxTokens)
	} else {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	return params
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, c.buildParams(req))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *openAIClient) CompleteJSON(ctx context.Context, req CompletionRequest, schemaName string, schema any) (string, error) {
	params := c.buildParams(req)
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   schemaName,
				Schema: schema,
				Strict: openai.Bool(true),
			},
		},
	}
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("structured completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *openAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(c.imageModel),
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("no image in generation response")
	}
	return resp.Data[0].URL, nil
}

func (c *openAIClient) Transcribe(ctx context.Context, audio io.Reader, filename, mimeType, language string) (string, error) {
	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     openai.File(audio, filename, mimeType),
		Model:    openai.AudioModel(c.speechModel),
		Language: openai.String(language),
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}
