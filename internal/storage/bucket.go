// Package storage uploads blobs to a Supabase Storage bucket.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Config holds bucket client settings.
type Config struct {
	URL        string
	ServiceKey string
	Bucket     string
	Timeout    time.Duration
}

// Bucket is a client for a single storage bucket.
type Bucket struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewBucket creates a bucket client.
func NewBucket(cfg Config) (*Bucket, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("storage URL is required")
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("storage service key is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Bucket{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Upload stores data at path, overwriting any existing object.
func (b *Bucket) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	reqURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", b.baseURL, url.PathEscape(b.bucket), escapePath(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	b.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	return b.do(req)
}

// Remove deletes the objects at paths.
func (b *Bucket) Remove(ctx context.Context, paths ...string) error {
	reqURL := fmt.Sprintf("%s/storage/v1/object/%s", b.baseURL, url.PathEscape(b.bucket))

	body, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	b.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	return b.do(req)
}

func (b *Bucket) setHeaders(req *http.Request) {
	req.Header.Set("apikey", b.serviceKey)
	req.Header.Set("Authorization", "Bearer "+b.serviceKey)
	req.Header.Set("Accept", "application/json")
}

func (b *Bucket) do(req *http.Request) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return responseError(resp.StatusCode, body)
	}
	return nil
}

// responseError extracts the storage API's message from an error body.
func responseError(status int, body []byte) error {
	for _, key := range []string{"message", "error"} {
		if msg := gjson.GetBytes(body, key).String(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
	}
	return fmt.Errorf("storage error: status %d", status)
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
