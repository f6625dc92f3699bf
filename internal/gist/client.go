// Package gist talks to the GitHub Gist API, which acts as the remote
// single-document store for roadmap backups. Every operation returns a
// structured Result; transport errors never escape as Go errors.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"roadmap-cli/internal/model"
)

const (
	defaultBaseURL = "https://api.github.com"

	// FileName is the fixed gist filename holding the progress document.
	// Discover matches on it, so it must never change.
	FileName = "ml-roadmap-progress.json"

	// DefaultDescription labels gists created by this tool; Discover
	// matches on it too.
	DefaultDescription = "ML Roadmap Progress"
)

type FailureKind string

const (
	FailAuthRequired FailureKind = "auth-required"
	FailNotFound     FailureKind = "not-found"
	FailTransport    FailureKind = "transport"
	FailMalformed    FailureKind = "malformed-payload"
)

// Result is the uniform outcome of a sync operation. Callers branch on
// Success and show Message; Kind and Status refine failures.
type Result struct {
	Success bool         `json:"success"`
	Kind    FailureKind  `json:"kind,omitempty"`
	Message string       `json:"message"`
	Status  int          `json:"status,omitempty"`
	GistID  string       `json:"gistId,omitempty"`
	Weeks   []model.Week `json:"-"`
}

func failure(kind FailureKind, status int, format string, args ...any) Result {
	return Result{Kind: kind, Status: status, Message: fmt.Sprintf(format, args...)}
}

// Options configure a Client beyond its SyncConfig. The zero value is
// production defaults; tests point BaseURL at an httptest server.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// ClientID identifies this machine in the envelope's syncedFrom field.
	ClientID string
}

// Client performs the remote document operations. It is stateless between
// calls apart from the gist id it learns when Create provisions a new
// document.
type Client struct {
	cfg      model.SyncConfig
	baseURL  string
	hc       *http.Client
	clientID string
}

func New(cfg model.SyncConfig, opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	clientID := opts.ClientID
	if clientID == "" {
		clientID = "roadmap-cli"
	}
	return &Client{cfg: cfg, baseURL: base, hc: hc, clientID: clientID}
}

// GistID returns the document id currently in use, including one learned
// from a Create call.
func (c *Client) GistID() string {
	return c.cfg.GistID
}

type gistFile struct {
	Content string `json:"content"`
}

type gistRequest struct {
	Description string              `json:"description,omitempty"`
	Public      *bool               `json:"public,omitempty"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Files       map[string]gistFile `json:"files"`
}

func (c *Client) envelope(weeks []model.Week) (string, error) {
	env := Envelope{
		RoadmapData: weeks,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		SyncedFrom:  c.clientID,
		Version:     EnvelopeVersion,
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if c.cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.hc.Do(req)
}

// Create provisions a new private gist holding the week collection and
// remembers its id on the client.
func (c *Client) Create(ctx context.Context, weeks []model.Week, description string) Result {
	if !c.cfg.Configured() {
		return failure(FailAuthRequired, 0, "GitHub access token required")
	}
	if description == "" {
		description = DefaultDescription
	}
	content, err := c.envelope(weeks)
	if err != nil {
		return failure(FailMalformed, 0, "encode progress: %v", err)
	}

	public := false
	resp, err := c.do(ctx, http.MethodPost, "/gists", gistRequest{
		Description: description,
		Public:      &public,
		Files:       map[string]gistFile{FileName: {Content: content}},
	})
	if err != nil {
		return failure(FailTransport, 0, "create cloud backup: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(FailTransport, resp.StatusCode, "failed to create cloud backup (HTTP %d)", resp.StatusCode)
	}

	var g gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil || g.ID == "" {
		return failure(FailMalformed, resp.StatusCode, "unexpected create response")
	}
	c.cfg.GistID = g.ID
	return Result{Success: true, Message: "progress synced to cloud", GistID: g.ID}
}

// Update replaces the remote document. When no gist id is known it
// delegates to Create, self-healing setups where the document was never
// provisioned.
func (c *Client) Update(ctx context.Context, weeks []model.Week) Result {
	if c.cfg.GistID == "" {
		return c.Create(ctx, weeks, DefaultDescription)
	}
	if !c.cfg.Configured() {
		return failure(FailAuthRequired, 0, "GitHub access token required")
	}
	content, err := c.envelope(weeks)
	if err != nil {
		return failure(FailMalformed, 0, "encode progress: %v", err)
	}

	resp, err := c.do(ctx, http.MethodPatch, "/gists/"+c.cfg.GistID, gistRequest{
		Files: map[string]gistFile{FileName: {Content: content}},
	})
	if err != nil {
		return failure(FailTransport, 0, "sync progress: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(FailTransport, resp.StatusCode, "failed to sync progress (HTTP %d)", resp.StatusCode)
	}
	return Result{Success: true, Message: "progress synced successfully", GistID: c.cfg.GistID}
}

// Read fetches and normalizes the remote document. A missing gist, a 404
// and an empty file all come back as FailNotFound rather than an error.
func (c *Client) Read(ctx context.Context) Result {
	if c.cfg.GistID == "" {
		return failure(FailNotFound, 0, "no cloud backup configured")
	}

	resp, err := c.do(ctx, http.MethodGet, "/gists/"+c.cfg.GistID, nil)
	if err != nil {
		return failure(FailTransport, 0, "download progress: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return failure(FailNotFound, resp.StatusCode, "no cloud backup found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(FailTransport, resp.StatusCode, "failed to download progress (HTTP %d)", resp.StatusCode)
	}

	var g gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		return failure(FailMalformed, resp.StatusCode, "unexpected gist response")
	}
	file, ok := g.Files[FileName]
	if !ok || file.Content == "" {
		return failure(FailNotFound, resp.StatusCode, "no progress data found in cloud")
	}

	weeks, err := DecodeDocument([]byte(file.Content))
	if err != nil {
		return failure(FailMalformed, resp.StatusCode, "cloud document is malformed: %v", err)
	}
	return Result{Success: true, Message: "progress downloaded from cloud", GistID: c.cfg.GistID, Weeks: weeks}
}

// Discover scans the token's gists for a previously created backup,
// matching on description and filename. Best-effort: any failure returns
// an empty id.
func (c *Client) Discover(ctx context.Context) string {
	if !c.cfg.Configured() {
		return ""
	}

	resp, err := c.do(ctx, http.MethodGet, "/gists", nil)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	var gists []gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&gists); err != nil {
		return ""
	}
	for _, g := range gists {
		if g.Description != DefaultDescription {
			continue
		}
		if _, ok := g.Files[FileName]; !ok {
			continue
		}
		return g.ID
	}
	return ""
}
