package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kgp-ops/wpr-portal/internal/audit"
	"github.com/kgp-ops/wpr-portal/internal/domain"
	"github.com/kgp-ops/wpr-portal/internal/platform/apierr"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
	"github.com/kgp-ops/wpr-portal/internal/store"
)

var (
	ErrFormDisabled    = errors.New("tracking file not found or missing required columns (NAME, A NUMBER)")
	ErrUnknownEmployee = errors.New("employee not found in the tracking sheet")
)

// OptionSets are the dropdown fallbacks, used whenever the sheet has no
// historical values for a field.
type OptionSets struct {
	WorkAreas   []string `yaml:"work_areas"`
	Disciplines []string `yaml:"disciplines"`
	PermitTypes []string `yaml:"permit_types"`
	Shifts      []string `yaml:"shifts"`
	Supervisors []string `yaml:"supervisors"`
}

// DefaultOptionSets mirrors the dropdowns of the paper WPR form.
func DefaultOptionSets() OptionSets {
	return OptionSets{
		WorkAreas: []string{
			"PROCESS AREA", "TANK FARM", "UTILITIES", "SUBSTATION",
			"WAREHOUSE", "LAYDOWN YARD",
		},
		Disciplines: []string{
			"MECHANICAL", "ELECTRICAL", "INSTRUMENTATION", "CIVIL",
			"PIPING", "SCAFFOLDING",
		},
		PermitTypes: []string{
			"HOT WORK", "COLD WORK", "CONFINED SPACE", "WORK AT HEIGHT",
			"EXCAVATION", "ELECTRICAL ISOLATION",
		},
		Shifts: []string{"DAY", "NIGHT"},
		Supervisors: []string{
			"MECHANICAL SUPERVISOR", "ELECTRICAL SUPERVISOR",
			"CIVIL SUPERVISOR", "PIPING SUPERVISOR",
		},
	}
}

type FormConfig struct {
	ActingSupervisor string
	Options          OptionSets
}

// FormBootstrap is everything the entry form needs to render itself.
type FormBootstrap struct {
	Disabled         bool        `json:"disabled"`
	DisabledReason   string      `json:"disabled_reason,omitempty"`
	Warning          string      `json:"warning,omitempty"`
	ActingSupervisor string      `json:"acting_supervisor"`
	Employees        []string    `json:"employees"`
	Options          FormOptions `json:"options"`
}

type FormOptions struct {
	WorkAreas   []string `json:"work_areas"`
	Disciplines []string `json:"disciplines"`
	PermitTypes []string `json:"permit_types"`
	Shifts      []string `json:"shifts"`
	Supervisors []string `json:"supervisors"`
}

type FormService interface {
	Bootstrap(ctx context.Context) (*FormBootstrap, error)
	EmployeeDetails(ctx context.Context, name string) (*domain.EmployeeDetails, error)
	Submit(ctx context.Context, sub domain.PermitSubmission) error
}

type formService struct {
	log     *logger.Logger
	tracker store.TrackerRepo
	audit   audit.Recorder
	cfg     FormConfig
}

func NewFormService(
	baseLog *logger.Logger,
	tracker store.TrackerRepo,
	auditRec audit.Recorder,
	cfg FormConfig,
) FormService {
	return &formService{
		log:     baseLog.With("service", "FormService"),
		tracker: tracker,
		audit:   auditRec,
		cfg:     cfg,
	}
}

// Bootstrap loads the sheet and derives the form's employee list and option
// sets. When the sheet is empty or lacks the NAME/ANUMBER columns the form is
// disabled with a reason while the rest of the portal stays up.
func (fs *formService) Bootstrap(ctx context.Context) (*FormBootstrap, error) {
	snap, err := fs.tracker.Load(ctx)
	if err != nil {
		return nil, err
	}
	tbl := snap.Table

	out := &FormBootstrap{
		Warning:          snap.Warning,
		ActingSupervisor: fs.cfg.ActingSupervisor,
		Employees:        tbl.ValuesFor(domain.KeyName, nil),
		Options: FormOptions{
			WorkAreas:   tbl.ValuesFor(domain.KeyWorkArea, fs.cfg.Options.WorkAreas),
			Disciplines: tbl.ValuesFor(domain.KeyDiscipline, fs.cfg.Options.Disciplines),
			PermitTypes: tbl.ValuesFor(domain.KeyPermitType, fs.cfg.Options.PermitTypes),
			Shifts:      tbl.ValuesFor(domain.KeyShift, fs.cfg.Options.Shifts),
			Supervisors: tbl.ValuesFor(domain.KeySupervisor, fs.cfg.Options.Supervisors),
		},
	}
	hm := tbl.HeaderMap()
	if tbl.Len() == 0 || !hm.HasKey(domain.KeyName) || !hm.HasKey(domain.KeyANumber) {
		out.Disabled = true
		out.DisabledReason = ErrFormDisabled.Error()
	}
	return out, nil
}

// EmployeeDetails returns the master-row fields copied onto a permit for the
// named employee. The first matching row wins.
func (fs *formService) EmployeeDetails(ctx context.Context, name string) (*domain.EmployeeDetails, error) {
	snap, err := fs.tracker.Load(ctx)
	if err != nil {
		return nil, err
	}
	tbl := snap.Table
	row := tbl.FirstRowWhere(domain.KeyName, name)
	if row < 0 {
		return nil, apierr.NotFound("unknown_employee", fmt.Errorf("%w: %s", ErrUnknownEmployee, name))
	}
	cell := func(key string) string {
		v, _ := tbl.CellByKey(row, key)
		return strings.TrimSpace(v)
	}
	return &domain.EmployeeDetails{
		Name:       cell(domain.KeyName),
		ANumber:    cell(domain.KeyANumber),
		JobTitle:   cell(domain.KeyJobTitle),
		IqamaID:    cell(domain.KeyIqamaID),
		Supervisor: cell(domain.KeySupervisor),
	}, nil
}

// Submit validates presence of the required fields, re-checks the employee
// against the current sheet, and appends one permit row keyed by the sheet's
// own headers. The outcome is recorded in the audit log either way.
func (fs *formService) Submit(ctx context.Context, sub domain.PermitSubmission) error {
	if err := fs.checkPresence(sub); err != nil {
		return err
	}

	snap, err := fs.tracker.Load(ctx)
	if err != nil {
		return err
	}
	tbl := snap.Table
	hm := tbl.HeaderMap()

	if tbl.Len() == 0 || !hm.HasKey(domain.KeyName) || !hm.HasKey(domain.KeyANumber) {
		fs.recordSubmission(ctx, sub, false, ErrFormDisabled.Error())
		return apierr.New(http.StatusConflict, "form_disabled", ErrFormDisabled)
	}

	row := tbl.FirstRowWhere(domain.KeyName, sub.EmployeeName)
	if row < 0 {
		fs.recordSubmission(ctx, sub, false, ErrUnknownEmployee.Error())
		return apierr.NotFound("unknown_employee", fmt.Errorf("%w: %s", ErrUnknownEmployee, sub.EmployeeName))
	}
	cell := func(key string) string {
		v, _ := tbl.CellByKey(row, key)
		return strings.TrimSpace(v)
	}

	header := func(key string) string {
		return hm.HeaderOr(key, domain.DefaultHeaders[key])
	}
	record := map[string]string{
		header(domain.KeyActingSupervisor): fs.cfg.ActingSupervisor,
		header(domain.KeyName):             sub.EmployeeName,
		header(domain.KeyANumber):          cell(domain.KeyANumber),
		header(domain.KeyJobTitle):         cell(domain.KeyJobTitle),
		header(domain.KeyIqamaID):          cell(domain.KeyIqamaID),
		header(domain.KeyWorkArea):         sub.WorkArea,
		header(domain.KeyDiscipline):       sub.Discipline,
		header(domain.KeyPermitType):       sub.PermitType,
		header(domain.KeyPermitSupervisor): sub.Supervisor,
		header(domain.KeyShift):            sub.Shift,
		header(domain.KeyPermitNumber):     sub.PermitNumber,
		header(domain.KeyDate):             sub.Date,
		header(domain.KeyStartTime):        sub.StartTime,
		header(domain.KeyEndTime):          sub.EndTime,
	}

	if err := fs.tracker.Append(ctx, record); err != nil {
		fs.log.Error("Permit append failed", "employee", sub.EmployeeName, "error", err)
		fs.recordSubmission(ctx, sub, false, err.Error())
		return apierr.New(http.StatusInternalServerError, "storage_write_failed", err)
	}
	fs.log.Info("Permit submitted", "employee", sub.EmployeeName, "permit_type", sub.PermitType, "date", sub.Date)
	fs.recordSubmission(ctx, sub, true, "")
	return nil
}

func (fs *formService) checkPresence(sub domain.PermitSubmission) error {
	required := []struct {
		name, val string
	}{
		{"employee_name", sub.EmployeeName},
		{"work_area", sub.WorkArea},
		{"discipline", sub.Discipline},
		{"permit_type", sub.PermitType},
		{"supervisor", sub.Supervisor},
		{"shift", sub.Shift},
		{"date", sub.Date},
		{"start_time", sub.StartTime},
		{"end_time", sub.EndTime},
	}
	for _, f := range required {
		if strings.TrimSpace(f.val) == "" {
			return apierr.BadRequest("missing_field", fmt.Errorf("missing required field %s", f.name))
		}
	}
	return nil
}

func (fs *formService) recordSubmission(ctx context.Context, sub domain.PermitSubmission, accepted bool, errMsg string) {
	ev := audit.SubmissionEvent{
		At:           time.Now(),
		Employee:     sub.EmployeeName,
		PermitType:   sub.PermitType,
		PermitNumber: sub.PermitNumber,
		PermitDate:   sub.Date,
		Accepted:     accepted,
		Error:        errMsg,
	}
	if err := fs.audit.RecordSubmission(ctx, ev); err != nil {
		fs.log.Warn("Audit write failed", "error", err)
	}
}
