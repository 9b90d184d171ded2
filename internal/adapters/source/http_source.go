package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"schedule-comparison-service/internal/domain"
	"strings"
	"time"
)

// Exports larger than this are rejected rather than buffered.
const maxExportBytes = 64 << 20

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPSource downloads a schedule export (CSV or XLSX, chosen by the URL
// path extension or the response content type).
type HTTPSource struct {
	URL    string
	Format domain.SourceFormat

	session *http.Client
}

func NewHTTPSource(rawURL string, format domain.SourceFormat) (*HTTPSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("http source: invalid url %q", rawURL)
	}

	return &HTTPSource{
		URL:     rawURL,
		Format:  format,
		session: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (s *HTTPSource) Describe() string { return s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) (domain.RowSet, error) {
	resp, err := s.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return req, nil
	})
	if err != nil {
		return domain.RowSet{}, fmt.Errorf("http source: get %q: %w", s.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBytes+1))
	if err != nil {
		return domain.RowSet{}, fmt.Errorf("http source: read body: %w", err)
	}
	if len(body) > maxExportBytes {
		return domain.RowSet{}, fmt.Errorf("http source: export exceeds %d bytes", maxExportBytes)
	}

	var (
		header []string
		rows   [][]string
	)
	if s.isWorkbook(resp.Header.Get("Content-Type")) {
		header, rows, err = ReadXLSX(bytes.NewReader(body))
	} else {
		header, rows, err = ReadCSV(bytes.NewReader(body))
	}
	if err != nil {
		return domain.RowSet{}, fmt.Errorf("http source: parse %q: %w", s.URL, err)
	}

	return domain.RowSet{Format: s.Format, Label: s.URL, Header: header, Rows: rows}, nil
}

func (s *HTTPSource) isWorkbook(contentType string) bool {
	if strings.Contains(contentType, "spreadsheetml") {
		return true
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".xlsx")
}

func (s *HTTPSource) do(req *http.Request) (*http.Response, error) {
	resp, err := s.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) using exponential backoff while respecting context cancellation.
func (s *HTTPSource) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := s.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
