package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/torkelwestby/christmas-rebus/internal/platform/envutil"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

// Record is a single row in a record-store table. Fields is keyed either by
// field name or by opaque field id, depending on the request.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type ListResult struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type ListParams struct {
	MaxRecords            int
	PageSize              int
	Offset                string
	ReturnFieldsByFieldID bool
}

// Client is the thin REST client over the external record store. Tables are
// addressed per call so the idea bank and the rebus progress row can share
// one client.
type Client interface {
	List(ctx context.Context, table string, params ListParams) (ListResult, error)
	Create(ctx context.Context, table string, fields map[string]any, typecast bool) (Record, error)
	Update(ctx context.Context, table string, recordID string, fields map[string]any, typecast bool) (Record, error)
	Delete(ctx context.Context, table string, recordID string) error
}

// Error mirrors the store's HTTP failure. Handlers translate Status into a
// user-facing code; the client never retries.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("airtable http %d: %s", e.Status, e.Message)
}

// StatusOf returns the upstream status carried by err, or 0.
func StatusOf(err error) int {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Status
	}
	return 0
}

type client struct {
	log        *logger.Logger
	baseURL    string
	token      string
	baseID     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	token := strings.TrimSpace(os.Getenv("AIRTABLE_TOKEN"))
	baseID := strings.TrimSpace(os.Getenv("AIRTABLE_BASE_ID"))
	if token == "" || baseID == "" {
		return nil, fmt.Errorf("missing AIRTABLE_TOKEN or AIRTABLE_BASE_ID")
	}

	baseURL := strings.TrimRight(envutil.Str("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"), "/")
	timeoutSec := envutil.Int("AIRTABLE_TIMEOUT_SECONDS", 15)

	return &client{
		log:        log.With("service", "AirtableClient"),
		baseURL:    baseURL,
		token:      token,
		baseID:     baseID,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *client) endpoint(table string, parts ...string) string {
	u := c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u
}

func (c *client) do(ctx context.Context, method, rawURL string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	// This data must never be served stale.
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: extractErrorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func extractErrorMessage(raw []byte) string {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != nil {
		switch v := payload.Error.(type) {
		case string:
			return v
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
			if b, err := json.Marshal(v); err == nil {
				return string(b)
			}
		}
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "unknown error"
}

func (c *client) List(ctx context.Context, table string, params ListParams) (ListResult, error) {
	q := url.Values{}
	if params.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(params.MaxRecords))
	}
	if params.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(params.PageSize))
	}
	if params.Offset != "" {
		q.Set("offset", params.Offset)
	}
	if params.ReturnFieldsByFieldID {
		q.Set("returnFieldsByFieldId", "true")
	}

	rawURL := c.endpoint(table)
	if enc := q.Encode(); enc != "" {
		rawURL += "?" + enc
	}

	var out ListResult
	if err := c.do(ctx, http.MethodGet, rawURL, nil, &out); err != nil {
		return ListResult{}, err
	}
	return out, nil
}

func (c *client) Create(ctx context.Context, table string, fields map[string]any, typecast bool) (Record, error) {
	rawURL := c.endpoint(table)
	if typecast {
		rawURL += "?typecast=true"
	}

	body := map[string]any{
		"records": []map[string]any{{"fields": fields}},
	}
	var out ListResult
	if err := c.do(ctx, http.MethodPost, rawURL, body, &out); err != nil {
		return Record{}, err
	}
	if len(out.Records) == 0 {
		return Record{}, &Error{Status: http.StatusBadGateway, Message: "create returned no records"}
	}
	return out.Records[0], nil
}

func (c *client) Update(ctx context.Context, table string, recordID string, fields map[string]any, typecast bool) (Record, error) {
	if strings.TrimSpace(recordID) == "" {
		return Record{}, fmt.Errorf("record id required")
	}
	rawURL := c.endpoint(table, recordID)
	if typecast {
		rawURL += "?typecast=true"
	}

	var out Record
	if err := c.do(ctx, http.MethodPatch, rawURL, map[string]any{"fields": fields}, &out); err != nil {
		return Record{}, err
	}
	return out, nil
}

func (c *client) Delete(ctx context.Context, table string, recordID string) error {
	if strings.TrimSpace(recordID) == "" {
		return fmt.Errorf("record id required")
	}
	return c.do(ctx, http.MethodDelete, c.endpoint(table, recordID), nil, nil)
}
