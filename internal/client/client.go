// Package client is a typed Go client for the Loqo Studio API. It carries
// the view-side fetch discipline: every call takes a context, overlapping
// fetches for the same resource resolve to the newest one, and requests are
// rate limited client-side.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/loqostudio/loqo-backend/internal/versions"
)

// ErrStale reports that a newer fetch for the same resource was started
// while this one was in flight. The caller discards the result; the newer
// fetch carries the authoritative data.
var ErrStale = fmt.Errorf("stale response discarded")

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

type StudioClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	limiter    *rate.Limiter
	seq        *fetchSeq
}

type Option func(*StudioClient)

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *StudioClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *StudioClient) {
		c.httpClient = hc
	}
}

func New(baseURL, token string, opts ...Option) *StudioClient {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	c := &StudioClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		token:      token,
		seq:        newFetchSeq(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StudioClient) do(ctx context.Context, method, path string, payload, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var envelope apiError
		if jErr := json.Unmarshal(raw, &envelope); jErr == nil && envelope.Error.Message != "" {
			return fmt.Errorf("api error %d (%s): %s", resp.StatusCode, envelope.Error.Code, envelope.Error.Message)
		}
		return fmt.Errorf("api error %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type versionsResponse struct {
	Versions []versions.GroupedVersion `json:"versions"`
}

// fetchVersions lists one kind for one part, discarding the result if a
// newer fetch for the same part+kind started while this one was in flight.
func (c *StudioClient) fetchVersions(ctx context.Context, partID uuid.UUID, kind versions.Kind) ([]versions.GroupedVersion, error) {
	key := string(kind) + ":" + partID.String()
	ticket := c.seq.begin(key)
	var resp versionsResponse
	path := fmt.Sprintf("/content/by-part/%s?kind=%s", partID, kind)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !c.seq.isCurrent(key, ticket) {
		return nil, ErrStale
	}
	return resp.Versions, nil
}

func (c *StudioClient) GetBeats(ctx context.Context, partID uuid.UUID) ([]versions.GroupedVersion, error) {
	return c.fetchVersions(ctx, partID, versions.KindBeat)
}

func (c *StudioClient) GetShots(ctx context.Context, partID uuid.UUID) ([]versions.GroupedVersion, error) {
	return c.fetchVersions(ctx, partID, versions.KindShot)
}

func (c *StudioClient) GetStoryboards(ctx context.Context, partID uuid.UUID) ([]versions.GroupedVersion, error) {
	return c.fetchVersions(ctx, partID, versions.KindStoryboard)
}

// SelectContent makes one version current on the server. Callers refetch the
// list afterwards rather than patching local state.
func (c *StudioClient) SelectContent(ctx context.Context, docID uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/content/"+docID.String()+"/select", nil, nil)
}

// SetBeatCurrent and SetShotCurrent are the studio-view names for selecting
// a version; both resolve to the same select call.
func (c *StudioClient) SetBeatCurrent(ctx context.Context, docID uuid.UUID) error {
	return c.SelectContent(ctx, docID)
}

func (c *StudioClient) SetShotCurrent(ctx context.Context, docID uuid.UUID) error {
	return c.SelectContent(ctx, docID)
}

type ContentRef struct {
	ID       uuid.UUID `json:"id"`
	Kind     string    `json:"kind"`
	Metadata struct {
		VersionNo int  `json:"versionNo"`
		Edited    bool `json:"edited"`
		Selected  bool `json:"selected"`
	} `json:"metadata"`
}

func (c *StudioClient) CreateContent(ctx context.Context, partID uuid.UUID, kind, content string) (*ContentRef, error) {
	payload := map[string]any{
		"part_id": partID,
		"kind":    kind,
		"content": content,
	}
	var ref ContentRef
	if err := c.do(ctx, http.MethodPost, "/content", payload, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *StudioClient) UpdateContent(ctx context.Context, docID uuid.UUID, content string) (*ContentRef, error) {
	var ref ContentRef
	if err := c.do(ctx, http.MethodPut, "/content/"+docID.String(), map[string]any{"content": content}, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (c *StudioClient) DeleteContent(ctx context.Context, docID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/content/"+docID.String(), nil, nil)
}

// PartStudio mirrors the server's single-call studio aggregate.
type PartStudio struct {
	Part            json.RawMessage           `json:"part"`
	Episode         json.RawMessage           `json:"episode"`
	Characters      []json.RawMessage         `json:"characters"`
	Locations       []json.RawMessage         `json:"locations"`
	Props           []json.RawMessage         `json:"props"`
	Beats           []versions.GroupedVersion `json:"beats"`
	Shots           []versions.GroupedVersion `json:"shots"`
	Storyboards     []versions.GroupedVersion `json:"storyboards"`
	SelectedShots   []versions.ShotItem       `json:"selectedShots"`
	ShotImages      []versions.MediaFolder    `json:"shotImages"`
	CharacterImages []versions.MediaFolder    `json:"characterImages"`
	Clips           []versions.MediaFolder    `json:"clips"`
}

func (c *StudioClient) GetPartStudio(ctx context.Context, partID uuid.UUID) (*PartStudio, error) {
	key := "studio:" + partID.String()
	ticket := c.seq.begin(key)
	var studio PartStudio
	if err := c.do(ctx, http.MethodGet, "/parts/"+partID.String()+"/studio", nil, &studio); err != nil {
		return nil, err
	}
	if !c.seq.isCurrent(key, ticket) {
		return nil, ErrStale
	}
	return &studio, nil
}

func (c *StudioClient) DeleteMedia(ctx context.Context, mediaID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/media/"+mediaID.String(), nil, nil)
}

func (c *StudioClient) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/images/"+imageID.String(), nil, nil)
}

func (c *StudioClient) DeleteClip(ctx context.Context, clipID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/clips/"+clipID.String(), nil, nil)
}
