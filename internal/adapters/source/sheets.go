package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/pkg/logger"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Sheets reads curated entries from the Google Sheets values API using an
// API key.
type Sheets struct {
	hc            *http.Client
	baseURL       string
	apiKey        string
	spreadsheetID string
	gids          []string
	logger        logger.Logger
}

// NewSheets creates a provider for the given spreadsheet and tab GIDs.
func NewSheets(apiKey, spreadsheetID string, gids []string, opts ...SheetsOption) *Sheets {
	s := &Sheets{
		hc:            &http.Client{Timeout: 25 * time.Second},
		baseURL:       defaultSheetsBaseURL,
		apiKey:        apiKey,
		spreadsheetID: spreadsheetID,
		gids:          gids,
		logger:        logger.Get().Named("sheets"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SheetsOption applies a configuration option to the Sheets provider.
type SheetsOption func(*Sheets)

// WithSheetsBaseURL points the provider at an alternate endpoint, used by
// tests against a local server.
func WithSheetsBaseURL(u string) SheetsOption {
	return func(s *Sheets) {
		if u != "" {
			s.baseURL = u
		}
	}
}

// WithSheetsHTTPClient overrides the underlying HTTP client.
func WithSheetsHTTPClient(hc *http.Client) SheetsOption {
	return func(s *Sheets) {
		if hc != nil {
			s.hc = hc
		}
	}
}

type spreadsheetMeta struct {
	Sheets []struct {
		Properties struct {
			SheetID int64  `json:"sheetId"`
			Title   string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

type valueRange struct {
	Values [][]any `json:"values"`
}

// ListEntries reads every configured tab and returns the parsed curated
// entries. Failing to read spreadsheet metadata is fatal; a single
// unreadable tab is logged and skipped.
func (s *Sheets) ListEntries(ctx context.Context) ([]model.RawEntry, error) {
	titles, err := s.tabTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSource, err)
	}

	var entries []model.RawEntry
	for _, gid := range s.gids {
		title, ok := titles[gid]
		if !ok {
			s.logger.Warn(ctx, "tab not found in spreadsheet", logger.String("gid", gid))
			continue
		}

		values, err := s.readTab(ctx, title)
		if err != nil {
			s.logger.Warn(ctx, "failed to read tab",
				logger.String("tab", title),
				logger.Error(err),
			)
			continue
		}

		parsed := parseRows(values)
		s.logger.Info(ctx, "parsed tab",
			logger.String("tab", title),
			logger.Int("entries", len(parsed)),
		)
		entries = append(entries, parsed...)
	}
	return entries, nil
}

// tabTitles maps configured GIDs to their tab titles.
func (s *Sheets) tabTitles(ctx context.Context) (map[string]string, error) {
	u := fmt.Sprintf("%s/%s?key=%s", s.baseURL, s.spreadsheetID, url.QueryEscape(s.apiKey))

	var meta spreadsheetMeta
	if err := s.getJSON(ctx, u, &meta); err != nil {
		return nil, fmt.Errorf("spreadsheet metadata: %w", err)
	}

	wanted := make(map[string]struct{}, len(s.gids))
	for _, gid := range s.gids {
		wanted[gid] = struct{}{}
	}

	titles := make(map[string]string)
	for _, sheet := range meta.Sheets {
		gid := strconv.FormatInt(sheet.Properties.SheetID, 10)
		if _, ok := wanted[gid]; ok {
			titles[gid] = sheet.Properties.Title
		}
	}
	return titles, nil
}

// readTab fetches the full cell grid of one tab.
func (s *Sheets) readTab(ctx context.Context, title string) ([][]string, error) {
	rangeRef := fmt.Sprintf("'%s'!A:Z", title)
	u := fmt.Sprintf("%s/%s/values/%s?key=%s",
		s.baseURL, s.spreadsheetID, url.PathEscape(rangeRef), url.QueryEscape(s.apiKey))

	var vr valueRange
	if err := s.getJSON(ctx, u, &vr); err != nil {
		return nil, err
	}

	rows := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (s *Sheets) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("sheets status %d: %s", resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode sheets response: %w", err)
	}
	return nil
}
