package lead

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	fetchTimeout  = 30 * time.Second
	maxImportErrs = 10
)

// ImportResult aggregates a spreadsheet import run.
type ImportResult struct {
	Imported   int      `json:"imported"`
	Duplicates int      `json:"duplicates"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
var gidPattern = regexp.MustCompile(`[#&?]gid=(\d+)`)

// emptySentinels are spreadsheet cell values treated as blank.
var emptySentinels = map[string]bool{"-": true, "n/a": true, "na": true}

// CSVExportURL converts a Google Sheets share URL into its CSV export form.
// URLs that already point at a CSV export, or that are not recognizable
// sheet links, pass through unchanged.
func CSVExportURL(shareURL string) string {
	url := strings.TrimSpace(shareURL)
	if strings.Contains(url, "/export?format=csv") || strings.Contains(url, "output=csv") {
		return url
	}

	m := sheetIDPattern.FindStringSubmatch(url)
	if m == nil {
		return url
	}
	out := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", m[1])
	if g := gidPattern.FindStringSubmatch(url); g != nil {
		out += "&gid=" + g[1]
	}
	return out
}

// ImportFromURL fetches a spreadsheet as CSV and inserts each row as a lead,
// applying the same alias resolution and duplicate detection as manual
// creation. Row failures are aggregated, never fatal to the run.
func (s *Service) ImportFromURL(ctx context.Context, shareURL string) (*ImportResult, error) {
	url := CSVExportURL(shareURL)
	if url == "" {
		return nil, errors.New("spreadsheet url is required")
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch spreadsheet: status %d", resp.StatusCode)
	}

	return s.importCSV(resp.Body)
}

func (s *Service) importCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	columns := mapHeader(header)
	if len(columns) == 0 {
		return nil, errors.New("no recognizable columns in header row")
	}

	result := &ImportResult{Errors: []string{}}
	rowNum := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			result.fail(fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		fields := rowFields(columns, record)
		if len(fields) == 0 {
			continue // blank line
		}
		if fields["full_name"] == nil && fields["email"] == nil && fields["phone"] == nil {
			continue // nothing identifying a lead, not worth an error
		}

		_, err = s.Create(fields)
		var dup *DuplicateError
		switch {
		case err == nil:
			result.Imported++
		case errors.As(err, &dup):
			result.Duplicates++
		default:
			result.fail(fmt.Sprintf("row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

func (r *ImportResult) fail(msg string) {
	r.Failed++
	if len(r.Errors) < maxImportErrs {
		r.Errors = append(r.Errors, msg)
	}
}

// mapHeader resolves each header cell through the field alias table and
// returns column index to canonical field. Unrecognized columns are skipped.
func mapHeader(header []string) map[int]string {
	columns := make(map[int]string)
	for i, cell := range header {
		if canonical := CanonicalField(cell); canonical != "" {
			columns[i] = canonical
		}
	}
	return columns
}

// rowFields extracts the canonical fields of one CSV record, dropping
// sentinel placeholders.
func rowFields(columns map[int]string, record []string) map[string]interface{} {
	fields := make(map[string]interface{})
	for i, canonical := range columns {
		if i >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" || emptySentinels[strings.ToLower(value)] {
			continue
		}
		fields[canonical] = value
	}
	return fields
}
