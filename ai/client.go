// Package ai wraps the Gemini multimodal endpoint behind a small
// analysis contract: image bytes in, {emotion, comment} out.
package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mizukif/photo-diary/apperr"
	"google.golang.org/genai"
)

const analysisModel = "gemini-2.5-flash"

// Fixed instruction prompt. The model is asked for a two-field JSON
// object; free-form text still gets accepted by the tolerant parser.
const analysisPrompt = "この画像から読み取れる感情や感性を分析し、" +
	"その日の出来事を記録するような、暖かくて短い日記コメントを100文字以内の日本語で生成してください。" +
	"日記の最後は「素敵な一日でした。」で締めくくってください。" +
	"結果は {\"emotion\": \"感情を表す短い単語\", \"comment\": \"日記コメント\"} " +
	"という形式のJSONオブジェクトだけを返してください。"

type Analysis struct {
	Emotion string `json:"emotion"`
	Comment string `json:"comment"`
}

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.ConfigError, "failed to create Gemini client", err)
	}

	return &Client{client: client, model: analysisModel}, nil
}

// Analyze sends the image plus the fixed instruction prompt and parses
// the response. Remote errors and empty responses are AnalysisFailure;
// malformed response text degrades to placeholder values instead of
// failing the request.
func (c *Client) Analyze(ctx context.Context, data []byte, mimeType string) (Analysis, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return Analysis{}, apperr.New(apperr.InvalidInput, "not an image file")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(analysisPrompt),
		}, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return Analysis{}, apperr.Wrap(apperr.AnalysisFailure, "AI analysis failed", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return Analysis{}, apperr.New(apperr.AnalysisFailure, "AI analysis returned no content")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Analysis{}, apperr.New(apperr.AnalysisFailure, "AI analysis returned empty text")
	}

	return parseAnalysis(text), nil
}

// parseAnalysis decodes the model output, tolerating Markdown code
// fences and non-JSON text. On decode failure the whole text becomes
// the comment and the emotion stays empty.
func parseAnalysis(text string) Analysis {
	raw := stripCodeFence(text)

	var parsed Analysis
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Analysis{Comment: text}
	}
	if parsed.Comment == "" {
		parsed.Comment = text
	}
	return parsed
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
