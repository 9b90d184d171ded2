package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"schedule-comparison-service/internal/domain"
	"sync/atomic"
	"testing"

	"github.com/xuri/excelize/v2"
)

const compactCSV = "day_name,customer_id,team_number,start_time,end_time,service_duration_minutes,customer_address,customer_city\n" +
	"tuesday,101,3,09:00,09:20,20,1 Elm St,Springfield\n" +
	"tuesday,102,3,09:35,09:50,15,2 Oak Ave,Springfield\n"

func writeTemp(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestCSVFileSourceFetch(t *testing.T) {
	p := writeTemp(t, "optimized.csv", compactCSV)

	rs, err := NewCSVFileSource(p, domain.CompactFormat).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Header) != 8 || rs.Header[0] != "day_name" {
		t.Fatalf("header = %v", rs.Header)
	}
	if len(rs.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rs.Rows))
	}
	if rs.Rows[1][1] != "102" {
		t.Fatalf("second row customer = %q, want 102", rs.Rows[1][1])
	}
	if rs.Format != domain.CompactFormat || rs.Label != p {
		t.Fatalf("format/label = %q/%q", rs.Format, rs.Label)
	}
}

func TestCSVFileSourceEmptyFile(t *testing.T) {
	p := writeTemp(t, "empty.csv", "")
	if _, err := NewCSVFileSource(p, domain.AutoFormat).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestCSVFileSourceMissingFile(t *testing.T) {
	src := NewCSVFileSource(filepath.Join(t.TempDir(), "nope.csv"), domain.AutoFormat)
	if _, err := src.Fetch(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestXLSXFileSourceFetch(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"CustomerId", "TeamNumber", "ScheduledStartTime", "ScheduledEndTime", "DurationMinute", "Address1", "City"},
		{101, 3, "2025-07-08 08:00:00", "2025-07-08 08:15:00", 15, "1 Elm St", "Springfield"},
		{102, 3, "2025-07-08 09:10:00.250000", "2025-07-08 09:40:00", 30, "2 Oak Ave", "Springfield"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	p := filepath.Join(t.TempDir(), "original.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	src, err := Open(p, domain.AutoFormat)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := src.(*XLSXFileSource); !ok {
		t.Fatalf("Open(%q) = %T, want *XLSXFileSource", p, src)
	}

	rs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rs.Header[0] != "CustomerId" {
		t.Fatalf("header = %v", rs.Header)
	}
	if len(rs.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rs.Rows))
	}
	if rs.Rows[1][2] != "2025-07-08 09:10:00.250000" {
		t.Fatalf("timestamp cell = %q", rs.Rows[1][2])
	}
}

func TestHTTPSourceRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(compactCSV))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/exports/optimized.csv", domain.CompactFormat)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	rs, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rs.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rs.Rows))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
}

func TestHTTPSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/missing.csv", domain.AutoFormat)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	_, err = src.Fetch(context.Background())
	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want 404 status error", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestOpenRejectsBadLocations(t *testing.T) {
	if _, err := Open("  ", domain.AutoFormat); err == nil {
		t.Fatalf("expected error for empty location")
	}
	if _, err := Open("http://", domain.AutoFormat); err == nil {
		t.Fatalf("expected error for url without host")
	}
	src, err := Open("data/original.csv", domain.VerboseFormat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*CSVFileSource); !ok {
		t.Fatalf("Open(csv) = %T", src)
	}
}
