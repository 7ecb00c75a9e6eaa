package remote

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

	"sqlgate/internal/domain"
)

// introspectionSQL is the fixed query DescribeSchema issues against a
// database to enumerate its tables and views.
const introspectionSQL = `SELECT name, type, sql FROM sqlite_master WHERE type IN ('table','view') AND name NOT LIKE 'sqlite_%' ORDER BY name`

var _ domain.SQLExecutor = (*Client)(nil)

// Client issues authenticated HTTP calls to the remote SQL service and
// translates its response envelope into a typed result or a typed Failure.
// It performs no retries; retry policy belongs to callers.
type Client struct {
	baseURL string
	creds   domain.CredentialSource
	httpc   *http.Client
}

// NewClient creates a Client against the given API base URL. Every call is
// bounded by timeout; a timed-out call surfaces as a Transport failure.
func NewClient(baseURL string, creds domain.CredentialSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// envelope is the narrow, explicitly-validated response shape of the remote
// service. Untyped JSON never flows past this boundary.
type envelope struct {
	Success bool            `json:"success"`
	Errors  []envelopeError `json:"errors"`
	Result  *resultPayload  `json:"result"`
}

type envelopeError struct {
	Message string `json:"message"`
}

type resultPayload struct {
	Results  []domain.Row `json:"results"`
	Duration *float64     `json:"duration"`
	Changes  *int64       `json:"changes"`
	Count    *int64       `json:"count"`
}

type listEnvelope struct {
	Success bool            `json:"success"`
	Errors  []envelopeError `json:"errors"`
	Result  []dbPayload     `json:"result"`
}

type dbPayload struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	NumTables *int64 `json:"num_tables"`
	FileSize  *int64 `json:"file_size"`
}

// Execute runs sqlText against the given database and returns the narrowed
// result, or a *Failure describing how the call went wrong.
func (c *Client) Execute(ctx context.Context, databaseID, sqlText string) (*domain.RemoteResult, error) {
	cred, err := c.creds.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]string{"sql": sqlText})
	if err != nil {
		return nil, fmt.Errorf("encode query body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/database/%s/query",
		c.baseURL, url.PathEscape(cred.AccountID), url.PathEscape(databaseID))

	raw, failure := c.do(ctx, http.MethodPost, endpoint, cred.Token, bytes.NewReader(body))
	if failure != nil {
		return nil, failure
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Failure{Kind: KindTransport, StatusText: fmt.Sprintf("malformed response envelope: %v", err)}
	}

	if !env.Success {
		return nil, &Failure{Kind: KindApplication, Messages: envelopeMessages(env.Errors)}
	}

	result := &domain.RemoteResult{Rows: []domain.Row{}}
	if env.Result != nil {
		if env.Result.Results != nil {
			result.Rows = env.Result.Results
		}
		result.DurationMs = env.Result.Duration
		result.Changes = env.Result.Changes
		result.TotalCount = env.Result.Count
	}
	return result, nil
}

// ListDatabases enumerates the databases available to the active credential.
func (c *Client) ListDatabases(ctx context.Context) ([]domain.Database, error) {
	cred, err := c.creds.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/database", c.baseURL, url.PathEscape(cred.AccountID))

	raw, failure := c.do(ctx, http.MethodGet, endpoint, cred.Token, nil)
	if failure != nil {
		return nil, failure
	}

	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Failure{Kind: KindTransport, StatusText: fmt.Sprintf("malformed response envelope: %v", err)}
	}
	if !env.Success {
		return nil, &Failure{Kind: KindApplication, Messages: envelopeMessages(env.Errors)}
	}

	dbs := make([]domain.Database, len(env.Result))
	for i, d := range env.Result {
		dbs[i] = domain.Database{
			ID:        d.UUID,
			Name:      d.Name,
			Version:   d.Version,
			NumTables: d.NumTables,
			SizeBytes: d.FileSize,
		}
	}
	return dbs, nil
}

// DescribeSchema enumerates the tables and views of a database by issuing
// the fixed introspection query. The result is not cached here; callers may
// cache it themselves.
func (c *Client) DescribeSchema(ctx context.Context, databaseID string) ([]domain.SchemaObject, error) {
	result, err := c.Execute(ctx, databaseID, introspectionSQL)
	if err != nil {
		return nil, err
	}

	objects := make([]domain.SchemaObject, 0, len(result.Rows))
	for _, row := range result.Rows {
		obj := domain.SchemaObject{}
		if v, ok := row["name"].(string); ok {
			obj.Name = v
		}
		if v, ok := row["type"].(string); ok {
			obj.Kind = v
		}
		if v, ok := row["sql"].(string); ok {
			obj.Definition = v
		}
		if obj.Name == "" {
			continue
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// do performs one HTTP round trip and returns the body on 2xx, or a typed
// Failure for connection errors and non-2xx statuses.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body io.Reader) ([]byte, *Failure) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, StatusText: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, StatusText: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, StatusCode: resp.StatusCode, StatusText: err.Error()}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &Failure{Kind: KindAuth, StatusCode: resp.StatusCode, StatusText: resp.Status}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Failure{Kind: KindTransport, StatusCode: resp.StatusCode, StatusText: resp.Status}
	}
	return raw, nil
}

func envelopeMessages(errs []envelopeError) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	if len(msgs) == 0 {
		msgs = append(msgs, "remote service reported failure without detail")
	}
	return msgs
}
