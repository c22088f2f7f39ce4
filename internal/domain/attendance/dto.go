package attendance

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

const (
	maxCalculateRecords  = 5000
	maxConsistencyWindow = 366 * 24 * time.Hour
	timestampLayout      = time.RFC3339
)

// ========================================
// REQUEST DTOs
// ========================================

// ClockRequest carries the authenticated staff member for clock and break actions.
type ClockRequest struct {
	StaffID string `json:"-"`
}

func (r ClockRequest) Validate() error {
	var errs validator.ValidationErrors
	validateStaffID(&errs, r.StaffID)
	return errs.Err()
}

type SummaryRequest struct {
	StaffID string `json:"-"`
	Year    string `json:"year"`
	Month   string `json:"month"`
	Net     bool   `json:"net"`
}

func (r SummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	validateStaffID(&errs, r.StaffID)

	if validator.IsEmpty(r.Year) {
		errs.Add("year", "year is required")
	} else if _, ok := validator.ParseYear(r.Year); !ok {
		errs.Add("year", "year must be a four digit year from 1970")
	}

	if validator.IsEmpty(r.Month) {
		errs.Add("month", "month is required")
	} else if _, ok := validator.ParseMonth(r.Month); !ok {
		errs.Add("month", "month must be between 1 and 12")
	}

	return errs.Err()
}

// YearMonth returns the parsed period. Call Validate first.
func (r SummaryRequest) YearMonth() (int, time.Month) {
	y, _ := validator.ParseYear(r.Year)
	m, _ := validator.ParseMonth(r.Month)
	return y, m
}

// CalculateRequest is a stateless calculation over records the caller supplies.
type CalculateRequest struct {
	Year    int                  `json:"year"`
	Month   int                  `json:"month"`
	Net     bool                 `json:"net"`
	Records []timecalc.RawRecord `json:"records"`
}

func (r CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 1970 || r.Year > 9999 {
		errs.Add("year", "year must be a four digit year from 1970")
	}
	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	if len(r.Records) > maxCalculateRecords {
		errs.Add("records", "too many records")
	}

	return errs.Err()
}

type ConsistencyRequest struct {
	StaffID   string `json:"-"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r ConsistencyRequest) Validate() error {
	var errs validator.ValidationErrors
	validateStaffID(&errs, r.StaffID)

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if startOK && endOK {
		if end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if end.Sub(start) > maxConsistencyWindow {
			errs.Add("end_date", "date range must not exceed 366 days")
		}
	}

	return errs.Err()
}

// Period resolves the inclusive date range in loc. Call Validate first.
func (r ConsistencyRequest) Period(loc *time.Location) timecalc.Period {
	start, _ := time.ParseInLocation("2006-01-02", r.StartDate, loc)
	end, _ := time.ParseInLocation("2006-01-02", r.EndDate, loc)
	return timecalc.Period{Start: start, End: end}
}

type RepairRequest struct {
	StaffID string `json:"-"`
}

func (r RepairRequest) Validate() error {
	var errs validator.ValidationErrors
	validateStaffID(&errs, r.StaffID)
	return errs.Err()
}

func validateStaffID(errs *validator.ValidationErrors, id string) {
	if validator.IsEmpty(id) {
		errs.Add("staff_id", "staff_id is required")
	} else if !validator.IsValidStaffID(id) {
		errs.Add("staff_id", "staff_id contains invalid characters")
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecordResponse struct {
	ID           string  `json:"id"`
	StaffID      string  `json:"staff_id"`
	ClockIn      string  `json:"clock_in"`
	ClockOut     *string `json:"clock_out"`
	BreakStart   *string `json:"break_start"`
	BreakEnd     *string `json:"break_end"`
	WorkDuration string  `json:"work_duration"`
	BreakMinutes int     `json:"break_minutes"`
}

// NewRecordResponse renders timestamps in loc and the net worked time as HH:mm.
func NewRecordResponse(r Record, loc *time.Location) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		StaffID:      r.StaffID,
		ClockIn:      r.ClockIn.In(loc).Format(timestampLayout),
		ClockOut:     formatTimePtr(r.ClockOut, loc),
		BreakStart:   formatTimePtr(r.BreakStart, loc),
		BreakEnd:     formatTimePtr(r.BreakEnd, loc),
		WorkDuration: timecalc.ActualWorkDuration(r.ClockIn, r.ClockOut, r.BreakStart, r.BreakEnd).String(),
		BreakMinutes: timecalc.BreakMinutes(r.BreakStart, r.BreakEnd),
	}
}

type SummaryLine struct {
	ClockIn      string `json:"clock_in"`
	WorkDuration string `json:"work_duration"`
	Wage         int64  `json:"wage"`
}

type SummaryResponse struct {
	Period            string        `json:"period"`
	Consistent        bool          `json:"consistent"`
	Message           string        `json:"message,omitempty"`
	TotalWorkDuration string        `json:"total_work_duration"`
	TotalMinutes      int           `json:"total_minutes"`
	Capped            bool          `json:"capped"`
	TotalWage         int64         `json:"total_wage"`
	ClosedRecords     int           `json:"closed_records"`
	OpenRecords       int           `json:"open_records"`
	Lines             []SummaryLine `json:"lines"`
}

// NewSummaryResponse converts an aggregator result. Wages are whole currency units.
func NewSummaryResponse(s timecalc.Summary, loc *time.Location) SummaryResponse {
	lines := make([]SummaryLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SummaryLine{
			ClockIn:      l.ClockIn.In(loc).Format(timestampLayout),
			WorkDuration: l.Minutes.String(),
			Wage:         l.Wage.IntPart(),
		})
	}

	return SummaryResponse{
		Period:            s.Period.String(),
		Consistent:        true,
		TotalWorkDuration: s.TotalMinutes.String(),
		TotalMinutes:      int(s.TotalMinutes),
		Capped:            s.Capped,
		TotalWage:         s.TotalWage.IntPart(),
		ClosedRecords:     s.Closed,
		OpenRecords:       s.Open,
		Lines:             lines,
	}
}

// InconsistentSummary withholds totals for a period whose records failed validation.
func InconsistentSummary(p timecalc.Period) SummaryResponse {
	return SummaryResponse{
		Period:            p.String(),
		Consistent:        false,
		Message:           InconsistencyMessage,
		TotalWorkDuration: timecalc.FormatMinutes(0),
		Lines:             []SummaryLine{},
	}
}

type ViolationResponse struct {
	Kind    string `json:"kind"`
	ClockIn string `json:"clock_in"`
}

type ConsistencyResponse struct {
	StaffID          string              `json:"staff_id"`
	Period           string              `json:"period"`
	Consistent       bool                `json:"consistent"`
	SingleOpenRecord bool                `json:"single_open_record"`
	Chronological    bool                `json:"chronological"`
	Violations       []ViolationResponse `json:"violations"`
}

type RepairResponse struct {
	StaffID        string `json:"staff_id"`
	KeptRecordID   string `json:"kept_record_id"`
	DeletedRecords int64  `json:"deleted_records"`
}

func formatTimePtr(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := t.In(loc).Format(timestampLayout)
	return &s
}
