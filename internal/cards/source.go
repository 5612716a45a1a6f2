package cards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ziadkadry99/studiofront/internal/storage"
)

// Source fetches the ordered card list from wherever the deployment keeps it.
type Source interface {
	Fetch(ctx context.Context) ([]Card, error)
}

// RESTSource reads cards from the backend's GET /api/projects endpoint.
type RESTSource struct {
	baseURL string
	client  *http.Client
}

// NewRESTSource creates a source for the backend at baseURL. A nil client
// gets a 10 second timeout.
func NewRESTSource(baseURL string, client *http.Client) *RESTSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RESTSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Fetch implements Source.
func (s *RESTSource) Fetch(ctx context.Context) ([]Card, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/projects", nil)
	if err != nil {
		return nil, fetchErr(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fetchErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fetchErr(fmt.Errorf("reading body: %w", err))
	}
	if resp.StatusCode >= 300 {
		return nil, fetchErr(fmt.Errorf("GET /api/projects returned status %d", resp.StatusCode))
	}

	var payload projectsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, parseErr(err)
	}
	if !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = "backend reported failure"
		}
		return nil, fetchErr(errors.New(msg))
	}

	out := make([]Card, 0, len(payload.Projects))
	for _, p := range payload.Projects {
		out = append(out, p.toCard())
	}
	if err := checkIDs(out); err != nil {
		return nil, parseErr(err)
	}
	return out, nil
}

// Getter is the read side of shared storage.
type Getter interface {
	Get(ctx context.Context, key string) (string, error)
}

// SnapshotSource reads a serialized card list from shared storage.
type SnapshotSource struct {
	storage Getter
	key     string
}

// NewSnapshotSource creates a source reading the snapshot under key.
func NewSnapshotSource(g Getter, key string) *SnapshotSource {
	return &SnapshotSource{storage: g, key: key}
}

// Key returns the storage key the snapshot lives under.
func (s *SnapshotSource) Key() string { return s.key }

// Fetch implements Source.
func (s *SnapshotSource) Fetch(ctx context.Context) ([]Card, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, &LoadError{Kind: ErrEmpty, Err: fmt.Errorf("no snapshot under %q", s.key)}
	}
	if err != nil {
		return nil, fetchErr(err)
	}
	return DecodeSnapshot([]byte(raw))
}

// EncodeSnapshot serializes cards into the storage snapshot format.
func EncodeSnapshot(cards []Card) ([]byte, error) {
	if cards == nil {
		cards = []Card{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a storage snapshot. Malformed input and duplicate
// ids are parse failures.
func DecodeSnapshot(data []byte) ([]Card, error) {
	var out []Card
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, parseErr(err)
	}
	if err := checkIDs(out); err != nil {
		return nil, parseErr(err)
	}
	return out, nil
}

func checkIDs(cards []Card) error {
	seen := make(map[string]bool, len(cards))
	for i, c := range cards {
		if c.ID == "" {
			return fmt.Errorf("card %d has no id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
