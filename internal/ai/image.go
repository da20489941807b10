package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ImageClient calls an OpenAI-compatible image generation endpoint and
// fetches the generated image bytes from the returned URL.
type ImageClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewImageClient(cfg ClientConfig) *ImageClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "dall-e-3"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 120 * time.Second
	}
	return &ImageClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: t},
	}
}

// Generate requests a single 1024x1024 standard-quality image for the
// prompt and returns the raw bytes fetched from the result URL.
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	body := map[string]any{
		"model":           c.model,
		"prompt":          prompt,
		"n":               1,
		"size":            "1024x1024",
		"quality":         "standard",
		"response_format": "url",
	}
	data, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/images/generations", c.baseURL), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "image generation request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image generation failed: %s", resp.Status)
	}

	var out struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode image generation response")
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return nil, fmt.Errorf("image generation returned no url")
	}
	return c.fetch(ctx, out.Data[0].URL)
}

func (c *ImageClient) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch generated image")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch generated image failed: %s", resp.Status)
	}
	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read generated image")
	}
	return img, nil
}
