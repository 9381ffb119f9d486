// Package source provides curated-entry providers: the Google Sheets API
// client and a local XLSX workbook reader, sharing one tabular row parser.
package source

import (
	"strings"

	"github.com/carver/wishforge/internal/domain/model"
)

// Tab layout of the curated spreadsheet: a banner row, then headers, then
// data.
const (
	headerRowIndex = 1
	dataRowIndex   = 2
)

// truncation markers removing trailing annotations from weapon names.
const braveMarker = "BRAVE version"

// columnIndices locates the required columns within a header row.
type columnIndices struct {
	name    int
	column1 int
	column2 int
	tier    int
}

// findColumns maps recognized header labels to their positions. Returns ok
// false when any required column is absent, which rejects the whole tab.
func findColumns(headers []string) (columnIndices, bool) {
	idx := columnIndices{name: -1, column1: -1, column2: -1, tier: -1}
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			idx.name = i
		case "column 1":
			idx.column1 = i
		case "column 2":
			idx.column2 = i
		case "tier":
			idx.tier = i
		}
	}
	ok := idx.name >= 0 && idx.column1 >= 0 && idx.column2 >= 0 && idx.tier >= 0
	return idx, ok
}

// parseRows converts one tab's cell grid into curated entries. Malformed or
// placeholder rows are silently skipped; a tab without the required headers
// yields nothing.
func parseRows(values [][]string) []model.RawEntry {
	if len(values) <= dataRowIndex {
		return nil
	}

	idx, ok := findColumns(values[headerRowIndex])
	if !ok {
		return nil
	}
	maxIdx := idx.name
	for _, i := range []int{idx.column1, idx.column2, idx.tier} {
		if i > maxIdx {
			maxIdx = i
		}
	}

	var entries []model.RawEntry
	for _, row := range values[dataRowIndex:] {
		if len(row) <= maxIdx {
			continue
		}

		name := row[idx.name]
		tier := row[idx.tier]
		if name == "" || tier == "" {
			continue
		}
		if isPlaceholder(name, tier) {
			continue
		}

		entry := model.RawEntry{
			Name:      cleanName(name),
			Tier:      strings.TrimSpace(tier),
			ColumnOne: splitPerks(row[idx.column1]),
			ColumnTwo: splitPerks(row[idx.column2]),
		}

		// A weapon without any curated perks is never matched.
		if len(entry.ColumnOne)+len(entry.ColumnTwo) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// isPlaceholder recognizes repeated header rows and filler entries inside
// the data region.
func isPlaceholder(name, tier string) bool {
	lower := strings.ToLower(name)
	return lower == "name" || lower == "weapon" || lower == "ideal" ||
		strings.ToLower(tier) == "tier" || tier == "/"
}

// cleanName drops anything after the first newline or the BRAVE marker.
func cleanName(name string) string {
	if i := strings.Index(name, "\n"); i >= 0 {
		name = name[:i]
	}
	if i := strings.Index(name, braveMarker); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// splitPerks splits one perk cell into individual perk names, one per line.
func splitPerks(cell string) []string {
	if cell == "" {
		return nil
	}
	var perks []string
	for _, part := range strings.Split(cell, "\n") {
		if p := strings.TrimSpace(part); p != "" {
			perks = append(perks, p)
		}
	}
	return perks
}
