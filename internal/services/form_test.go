package services

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/kgp-ops/wpr-portal/internal/domain"
	"github.com/kgp-ops/wpr-portal/internal/platform/apierr"
	"github.com/kgp-ops/wpr-portal/internal/tabular"
)

func testFormConfig() FormConfig {
	return FormConfig{
		ActingSupervisor: "MECHANICAL SUPERVISOR",
		Options: OptionSets{
			WorkAreas:   []string{"Unit 1", "Unit 2"},
			Disciplines: []string{"Mechanical", "Electrical"},
			PermitTypes: []string{"Hot Work", "Cold Work"},
			Shifts:      []string{"Day", "Night"},
			Supervisors: []string{"Sam", "Alex"},
		},
	}
}

func newFormFixture(t *testing.T, tbl *tabular.Table, warning string) (FormService, *stubTracker, *captureAudit) {
	t.Helper()
	tracker := &stubTracker{table: tbl, warning: warning}
	rec := &captureAudit{}
	return NewFormService(testLogger(t), tracker, rec, testFormConfig()), tracker, rec
}

func validSubmission() domain.PermitSubmission {
	return domain.PermitSubmission{
		EmployeeName: "Alice",
		WorkArea:     "Unit 3",
		Discipline:   "Mechanical",
		PermitType:   "Hot Work",
		Supervisor:   "Sam",
		Shift:        "Day",
		PermitNumber: "P-77",
		Date:         "2025-03-10",
		StartTime:    "08:00",
		EndTime:      "17:00",
	}
}

func TestBootstrap(t *testing.T) {
	fs, _, _ := newFormFixture(t, masterTable(), "")
	boot, err := fs.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if boot.Disabled {
		t.Fatalf("Bootstrap: form unexpectedly disabled: %s", boot.DisabledReason)
	}
	if !reflect.DeepEqual(boot.Employees, []string{"Alice", "Bob"}) {
		t.Fatalf("employees: got=%v", boot.Employees)
	}
	// Historical values win over the built-in fallbacks.
	if !reflect.DeepEqual(boot.Options.WorkAreas, []string{"Unit 3", "Unit 1"}) {
		t.Fatalf("work areas from history: got=%v", boot.Options.WorkAreas)
	}
	if boot.ActingSupervisor != "MECHANICAL SUPERVISOR" {
		t.Fatalf("acting supervisor: got=%q", boot.ActingSupervisor)
	}
}

func TestBootstrapFallbackOptions(t *testing.T) {
	// Sheet with the required columns but no option history.
	tbl := tabular.New(
		[]string{"NAME", "A NUMBER"},
		[][]string{{"Alice", "A123"}},
	)
	fs, _, _ := newFormFixture(t, tbl, "")
	boot, err := fs.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if boot.Disabled {
		t.Fatalf("form should be enabled")
	}
	if !reflect.DeepEqual(boot.Options.Shifts, []string{"Day", "Night"}) {
		t.Fatalf("fallback shifts: got=%v", boot.Options.Shifts)
	}
}

func TestBootstrapDisabled(t *testing.T) {
	tests := []struct {
		name string
		tbl  *tabular.Table
	}{
		{"empty sheet", tabular.NewEmpty()},
		{"missing a-number column", tabular.New([]string{"NAME"}, [][]string{{"Alice"}})},
		{"no rows", tabular.New([]string{"NAME", "A NUMBER"}, nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs, _, _ := newFormFixture(t, tc.tbl, "")
			boot, err := fs.Bootstrap(context.Background())
			if err != nil {
				t.Fatalf("Bootstrap: %v", err)
			}
			if !boot.Disabled || boot.DisabledReason == "" {
				t.Fatalf("want disabled with reason, got disabled=%v reason=%q", boot.Disabled, boot.DisabledReason)
			}
		})
	}
}

func TestBootstrapSurfacesLoadWarning(t *testing.T) {
	fs, _, _ := newFormFixture(t, tabular.NewEmpty(), "tracking file could not be read")
	boot, err := fs.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if boot.Warning != "tracking file could not be read" {
		t.Fatalf("warning passthrough: got=%q", boot.Warning)
	}
}

func TestEmployeeDetails(t *testing.T) {
	fs, _, _ := newFormFixture(t, masterTable(), "")
	ctx := context.Background()

	det, err := fs.EmployeeDetails(ctx, "Alice")
	if err != nil {
		t.Fatalf("EmployeeDetails: %v", err)
	}
	want := &domain.EmployeeDetails{Name: "Alice", ANumber: "A123", JobTitle: "Fitter", IqamaID: "IQ1", Supervisor: "Sam"}
	if !reflect.DeepEqual(det, want) {
		t.Fatalf("details: want=%+v got=%+v", want, det)
	}

	_, err = fs.EmployeeDetails(ctx, "Nobody")
	if !errors.Is(err, ErrUnknownEmployee) {
		t.Fatalf("unknown employee: want ErrUnknownEmployee got=%v", err)
	}
	if status, code := apierr.Resolve(err); status != http.StatusNotFound || code != "unknown_employee" {
		t.Fatalf("unknown employee mapping: got %d/%s", status, code)
	}
}

func TestSubmitResolvesHeadersThroughSheet(t *testing.T) {
	fs, tracker, rec := newFormFixture(t, masterTable(), "")
	if err := fs.Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(tracker.appends) != 1 {
		t.Fatalf("appends: want=1 got=%d", len(tracker.appends))
	}
	record := tracker.appends[0]

	// Existing columns keep the sheet's own spelling.
	if record["A.Number"] != "A123" {
		t.Fatalf("A.Number copied from master: got=%q (record=%v)", record["A.Number"], record)
	}
	if record["Permit No."] != "P-77" {
		t.Fatalf("Permit No.: got=%q", record["Permit No."])
	}
	if record["DISCIPLINE / DEPARTMENT"] != "Mechanical" {
		t.Fatalf("discipline: got=%q", record["DISCIPLINE / DEPARTMENT"])
	}
	// Columns the sheet lacks get the default label.
	if record["ACTING SUPERVISOR"] != "MECHANICAL SUPERVISOR" {
		t.Fatalf("acting supervisor default header: got=%v", record)
	}
	if record["SUPERVISOR / SUPERINTENDENT"] != "Sam" {
		t.Fatalf("permit supervisor: got=%v", record)
	}
	// Master-row fields are copied, not trusted from the client.
	if record["JOB TITLE"] != "Fitter" || record["IQAMA ID"] != "IQ1" {
		t.Fatalf("copied fields: got=%v", record)
	}

	if len(rec.subs) != 1 || !rec.subs[0].Accepted || rec.subs[0].Employee != "Alice" {
		t.Fatalf("audit event: got=%+v", rec.subs)
	}
}

func TestSubmitMissingField(t *testing.T) {
	fs, tracker, rec := newFormFixture(t, masterTable(), "")
	sub := validSubmission()
	sub.Date = " "
	err := fs.Submit(context.Background(), sub)
	if err == nil {
		t.Fatalf("want error")
	}
	if status, code := apierr.Resolve(err); status != http.StatusBadRequest || code != "missing_field" {
		t.Fatalf("mapping: got %d/%s", status, code)
	}
	if len(tracker.appends) != 0 {
		t.Fatalf("nothing should be appended")
	}
	if len(rec.subs) != 0 {
		t.Fatalf("validation failures are not audited: got=%+v", rec.subs)
	}
}

func TestSubmitFormDisabled(t *testing.T) {
	tbl := tabular.New([]string{"NAME"}, [][]string{{"Alice"}})
	fs, tracker, rec := newFormFixture(t, tbl, "")
	err := fs.Submit(context.Background(), validSubmission())
	if !errors.Is(err, ErrFormDisabled) {
		t.Fatalf("want ErrFormDisabled got=%v", err)
	}
	if status, code := apierr.Resolve(err); status != http.StatusConflict || code != "form_disabled" {
		t.Fatalf("mapping: got %d/%s", status, code)
	}
	if len(tracker.appends) != 0 {
		t.Fatalf("nothing should be appended")
	}
	if len(rec.subs) != 1 || rec.subs[0].Accepted {
		t.Fatalf("rejection should be audited: got=%+v", rec.subs)
	}
}

func TestSubmitUnknownEmployee(t *testing.T) {
	fs, _, rec := newFormFixture(t, masterTable(), "")
	sub := validSubmission()
	sub.EmployeeName = "Mallory"
	if err := fs.Submit(context.Background(), sub); !errors.Is(err, ErrUnknownEmployee) {
		t.Fatalf("want ErrUnknownEmployee got=%v", err)
	}
	if len(rec.subs) != 1 || rec.subs[0].Accepted {
		t.Fatalf("rejection should be audited: got=%+v", rec.subs)
	}
}

func TestSubmitAppendFailure(t *testing.T) {
	fs, tracker, rec := newFormFixture(t, masterTable(), "")
	tracker.appendErr = errors.New("disk full")
	err := fs.Submit(context.Background(), validSubmission())
	if err == nil {
		t.Fatalf("want error")
	}
	if status, code := apierr.Resolve(err); status != http.StatusInternalServerError || code != "storage_write_failed" {
		t.Fatalf("mapping: got %d/%s", status, code)
	}
	if len(rec.subs) != 1 || rec.subs[0].Accepted || rec.subs[0].Error == "" {
		t.Fatalf("failure should be audited with the error: got=%+v", rec.subs)
	}
}
