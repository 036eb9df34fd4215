package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kgp-ops/wpr-portal/internal/audit"
	"github.com/kgp-ops/wpr-portal/internal/domain"
	"github.com/kgp-ops/wpr-portal/internal/platform/apierr"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
	"github.com/kgp-ops/wpr-portal/internal/store"
	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

// BrowseQuery is the admin panel's filter set. Every non-zero field must
// match (conjunctive); zero From/To leave that end of the date range open.
type BrowseQuery struct {
	Employee   string
	WorkArea   string
	Discipline string
	PermitType string
	Shift      string
	From       time.Time
	To         time.Time
	Page       int
	Size       int
}

type BrowsePage struct {
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	TotalRows  int        `json:"total_rows"`
	TotalPages int        `json:"total_pages"`
	DateColumn string     `json:"date_column,omitempty"`
	Warning    string     `json:"warning,omitempty"`
}

// CountBucket is one bar of a chart: a distinct value and how often it
// occurs.
type CountBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type StatsResult struct {
	Key     string        `json:"key"`
	Counts  []CountBucket `json:"counts"`
	PerDay  []CountBucket `json:"per_day"`
	Warning string        `json:"warning,omitempty"`
}

type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"-"`
	Content     []byte `json:"-"`
	Rows        int    `json:"rows"`
}

type ActivityResult struct {
	Submissions []audit.SubmissionEvent `json:"submissions"`
	Exports     []audit.ExportEvent     `json:"exports"`
}

type AdminService interface {
	Browse(ctx context.Context, q BrowseQuery) (*BrowsePage, error)
	Stats(ctx context.Context, key string) (*StatsResult, error)
	Export(ctx context.Context, q BrowseQuery) (*ExportResult, error)
	Activity(ctx context.Context, limit int) (*ActivityResult, error)
}

type adminService struct {
	log     *logger.Logger
	tracker store.TrackerRepo
	audit   audit.Recorder
	detect  tabular.DateColumnDetector
}

func NewAdminService(
	baseLog *logger.Logger,
	tracker store.TrackerRepo,
	auditRec audit.Recorder,
	detect tabular.DateColumnDetector,
) AdminService {
	if detect == nil {
		detect = tabular.DetectDateColumn
	}
	return &adminService{
		log:     baseLog.With("service", "AdminService"),
		tracker: tracker,
		audit:   auditRec,
		detect:  detect,
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 500
)

// Browse returns one page of the filtered sheet with its display headers.
func (as *adminService) Browse(ctx context.Context, q BrowseQuery) (*BrowsePage, error) {
	if q.Size == 0 {
		q.Size = defaultPageSize
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > maxPageSize {
		return nil, apierr.BadRequest("bad_page_size", fmt.Errorf("page size %d out of range", q.Size))
	}
	if q.Page < 1 {
		return nil, apierr.BadRequest("bad_page", fmt.Errorf("page number %d out of range", q.Page))
	}

	snap, err := as.tracker.Load(ctx)
	if err != nil {
		return nil, err
	}
	filtered, dateCol := as.applyFilters(snap.Table, q)

	paged, err := filtered.Paginate(q.Size, q.Page)
	if err != nil {
		return nil, apierr.BadRequest("bad_page", err)
	}
	return &BrowsePage{
		Headers:    paged.Headers(),
		Rows:       paged.Rows(),
		Page:       q.Page,
		Size:       q.Size,
		TotalRows:  filtered.Len(),
		TotalPages: filtered.PageCount(q.Size),
		DateColumn: dateCol,
		Warning:    snap.Warning,
	}, nil
}

// applyFilters builds the conjunctive predicate set for a query. A date range
// on a sheet with no detectable date column is skipped rather than failed;
// the detected column (when any) is reported back for display.
func (as *adminService) applyFilters(tbl *tabular.Table, q BrowseQuery) (*tabular.Table, string) {
	var preds []tabular.Predicate
	equalities := []struct {
		key, val string
	}{
		{domain.KeyName, q.Employee},
		{domain.KeyWorkArea, q.WorkArea},
		{domain.KeyDiscipline, q.Discipline},
		{domain.KeyPermitType, q.PermitType},
		{domain.KeyShift, q.Shift},
	}
	for _, e := range equalities {
		if strings.TrimSpace(e.val) != "" {
			preds = append(preds, tabular.KeyEquals(e.key, e.val))
		}
	}

	dateCol, haveDate := as.detect(tbl)
	if !q.From.IsZero() || !q.To.IsZero() {
		if haveDate {
			if key, ok := tbl.HeaderMap().Key(dateCol); ok {
				preds = append(preds, tabular.KeyDateBetween(key, q.From, q.To))
			}
		} else {
			as.log.Debug("Date range requested but no date column detected")
		}
	}
	if !haveDate {
		dateCol = ""
	}
	if len(preds) == 0 {
		return tbl, dateCol
	}
	return tbl.Filter(preds...), dateCol
}

// Stats aggregates one canonical column into sorted counts, plus a per-day
// submission series over the detected date column.
func (as *adminService) Stats(ctx context.Context, key string) (*StatsResult, error) {
	if key == "" {
		key = domain.KeyDiscipline
	}
	snap, err := as.tracker.Load(ctx)
	if err != nil {
		return nil, err
	}
	tbl := snap.Table

	out := &StatsResult{
		Key:     key,
		Counts:  sortedByCount(tbl.AggregateCounts(key)),
		Warning: snap.Warning,
	}
	if dateCol, ok := as.detect(tbl); ok {
		if dateKey, ok := tbl.HeaderMap().Key(dateCol); ok {
			out.PerDay = perDaySeries(tbl, dateKey)
		}
	}
	return out, nil
}

func sortedByCount(counts map[string]int) []CountBucket {
	out := make([]CountBucket, 0, len(counts))
	for v, n := range counts {
		out = append(out, CountBucket{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func perDaySeries(tbl *tabular.Table, dateKey string) []CountBucket {
	days := make(map[string]int)
	for i := 0; i < tbl.Len(); i++ {
		cell, ok := tbl.CellByKey(i, dateKey)
		if !ok {
			continue
		}
		d, ok := tabular.ParseCellDate(cell)
		if !ok {
			continue
		}
		days[d.Format("2006-01-02")]++
	}
	out := make([]CountBucket, 0, len(days))
	for day, n := range days {
		out = append(out, CountBucket{Value: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Export serializes the filtered sheet in the backing file's own format under
// a timestamped filename, and records the download in the audit log.
func (as *adminService) Export(ctx context.Context, q BrowseQuery) (*ExportResult, error) {
	snap, err := as.tracker.Load(ctx)
	if err != nil {
		return nil, err
	}
	filtered, _ := as.applyFilters(snap.Table, q)

	content, err := as.tracker.Encode(filtered)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	filename := "wpr_export_" + time.Now().Format("20060102_150405") + as.tracker.Ext()

	ev := audit.ExportEvent{
		At:       time.Now(),
		Filename: filename,
		Rows:     filtered.Len(),
		Filters:  summarizeFilters(q),
	}
	if err := as.audit.RecordExport(ctx, ev); err != nil {
		as.log.Warn("Audit write failed", "error", err)
	}
	as.log.Info("Sheet exported", "filename", filename, "rows", filtered.Len())

	return &ExportResult{
		Filename:    filename,
		ContentType: as.tracker.ContentType(),
		Content:     content,
		Rows:        filtered.Len(),
	}, nil
}

func summarizeFilters(q BrowseQuery) string {
	var parts []string
	add := func(name, val string) {
		if strings.TrimSpace(val) != "" {
			parts = append(parts, name+"="+val)
		}
	}
	add("employee", q.Employee)
	add("work_area", q.WorkArea)
	add("discipline", q.Discipline)
	add("permit_type", q.PermitType)
	add("shift", q.Shift)
	if !q.From.IsZero() {
		add("from", q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		add("to", q.To.Format("2006-01-02"))
	}
	return strings.Join(parts, " ")
}

// Activity lists the most recent submission and export events.
func (as *adminService) Activity(ctx context.Context, limit int) (*ActivityResult, error) {
	if limit <= 0 {
		limit = 50
	}
	subs, err := as.audit.RecentSubmissions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}
	exps, err := as.audit.RecentExports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}
	return &ActivityResult{Submissions: subs, Exports: exps}, nil
}
