package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assetdesk/internal/core/apperror"
	appctx "assetdesk/internal/core/context"
	"assetdesk/internal/core/record"
	"assetdesk/internal/metadata"
)

// maxPayload caps the response body read from the backend.
const maxPayload = 64 << 20

// REST fetches rows with GET {baseURL}{endpoint}.
type REST struct {
	baseURL string
	client  *http.Client
}

// NewREST creates a REST source.
func NewREST(baseURL string, timeout time.Duration) *REST {
	return &REST{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implements reports.Source.
func (s *REST) Fetch(ctx context.Context, def metadata.ReportDef) ([]record.Record, error) {
	if def.Endpoint == "" {
		return nil, apperror.NewUpstream("report has no endpoint", nil).WithDetail("report", def.Name)
	}

	url := s.baseURL + "/" + strings.TrimLeft(def.Endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if rid := appctx.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperror.NewUpstream("record source unreachable", err).WithDetail("endpoint", def.Endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.NewUpstream(fmt.Sprintf("record source returned %d", resp.StatusCode), nil).
			WithDetail("endpoint", def.Endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, apperror.NewUpstream("read record source response", err)
	}

	rows, err := Decode(body, def.Envelope)
	if err != nil {
		return nil, apperror.NewUpstream("unrecognised record source payload", err).WithDetail("endpoint", def.Endpoint)
	}
	return rows, nil
}
