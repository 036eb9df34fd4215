// Package domain holds the portal's record types and the canonical keys of
// every column the portal itself reads or writes. Sheets may label these
// columns however they like; lookups go through the canonical key.
package domain

// Canonical keys of the employee master columns.
const (
	KeyName       = "NAME"
	KeyANumber    = "ANUMBER"
	KeyJobTitle   = "JOBTITLE"
	KeyIqamaID    = "IQAMAID"
	KeySupervisor = "SUPERVISOR"
)

// Canonical keys of the permit columns.
const (
	KeyActingSupervisor = "ACTINGSUPERVISOR"
	KeyWorkArea         = "WORKAREA"
	KeyDiscipline       = "DISCIPLINEDEPARTMENT"
	KeyPermitType       = "PERMITTYPE"
	KeyPermitSupervisor = "SUPERVISORSUPERINTENDENT"
	KeyShift            = "SHIFT"
	KeyPermitNumber     = "PERMITNO"
	KeyDate             = "DATE"
	KeyStartTime        = "STARTTIME"
	KeyEndTime          = "ENDTIME"
)

// RequiredKeys are the columns the entry form cannot run without. The sheet
// missing either disables submissions while the admin panel stays up.
var RequiredKeys = []string{KeyName, KeyANumber}

// DefaultHeaders label columns the portal appends to a sheet that does not
// have them yet. Existing sheets keep their own spelling through the
// reconciliation map; these only apply to brand-new columns.
var DefaultHeaders = map[string]string{
	KeyName:             "NAME",
	KeyANumber:          "A NUMBER",
	KeyJobTitle:         "JOB TITLE",
	KeyIqamaID:          "IQAMA ID",
	KeySupervisor:       "SUPERVISOR",
	KeyActingSupervisor: "ACTING SUPERVISOR",
	KeyWorkArea:         "WORK AREA",
	KeyDiscipline:       "DISCIPLINE / DEPARTMENT",
	KeyPermitType:       "PERMIT TYPE",
	KeyPermitSupervisor: "SUPERVISOR / SUPERINTENDENT",
	KeyShift:            "SHIFT",
	KeyPermitNumber:     "PERMIT NO",
	KeyDate:             "DATE",
	KeyStartTime:        "START TIME",
	KeyEndTime:          "END TIME",
}

// EmployeeDetails are the master-row fields copied onto a permit when an
// employee is selected on the form.
type EmployeeDetails struct {
	Name       string `json:"name"`
	ANumber    string `json:"a_number"`
	JobTitle   string `json:"job_title"`
	IqamaID    string `json:"iqama_id"`
	Supervisor string `json:"supervisor"`
}

// PermitSubmission is one filled-in entry form. Date is YYYY-MM-DD and the
// times are HH:MM; both travel as strings end to end, the sheet being the
// system of record for formatting.
type PermitSubmission struct {
	EmployeeName string `json:"employee_name"`
	WorkArea     string `json:"work_area"`
	Discipline   string `json:"discipline"`
	PermitType   string `json:"permit_type"`
	Supervisor   string `json:"supervisor"`
	Shift        string `json:"shift"`
	PermitNumber string `json:"permit_number"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}
