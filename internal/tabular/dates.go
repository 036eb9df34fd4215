package tabular

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateColumnDetector picks the header of the column date filters and the
// per-day series should run over, or reports that none exists.
type DateColumnDetector func(t *Table) (string, bool)

// DetectDateColumn is the default detector: a header containing "DATE" but not
// "TIME" (case-insensitive) wins; failing that, the first header containing
// either. The substring match is deliberately loose and will pick up headers
// like "UPDATED"; deployments with such sheets swap in their own detector.
func DetectDateColumn(t *Table) (string, bool) {
	var fallback string
	haveFallback := false
	for _, h := range t.Headers() {
		u := strings.ToUpper(h)
		hasDate := strings.Contains(u, "DATE")
		hasTime := strings.Contains(u, "TIME")
		if hasDate && !hasTime {
			return h, true
		}
		if (hasDate || hasTime) && !haveFallback {
			fallback = h
			haveFallback = true
		}
	}
	return fallback, haveFallback
}

var cellDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01/02/06",
	"1-2-2006",
	"01-02-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseCellDate parses a sheet cell as a calendar date. Cells carrying an
// Excel numeric serial are converted the way the sheet software would; the
// serial range guard keeps plain numbers (permit counts, personnel numbers)
// from being misread as dates.
func ParseCellDate(cell string) (time.Time, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	}
	for _, layout := range cellDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
