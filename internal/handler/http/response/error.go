package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type mappedError struct {
	target  error
	status  int
	code    string
	message string
}

var attendanceErrors = []mappedError{
	{attendance.ErrAlreadyClockedIn, http.StatusConflict, "ALREADY_CLOCKED_IN", "Already clocked in"},
	{attendance.ErrNotClockedIn, http.StatusConflict, "NOT_CLOCKED_IN", "Not clocked in"},
	{attendance.ErrInconsistentRecords, http.StatusConflict, "INCONSISTENT_RECORDS", attendance.InconsistencyMessage},
	{attendance.ErrBreakAlreadyStarted, http.StatusConflict, "BREAK_ALREADY_STARTED", "Break already taken for this shift"},
	{attendance.ErrBreakNotStarted, http.StatusConflict, "BREAK_NOT_STARTED", "Break has not been started"},
	{attendance.ErrBreakAlreadyEnded, http.StatusConflict, "BREAK_ALREADY_ENDED", "Break has already ended"},
	{attendance.ErrNothingToRepair, http.StatusConflict, "NOTHING_TO_REPAIR", "No duplicate open records to repair"},
	{attendance.ErrRecordNotFound, http.StatusNotFound, CodeNotFound, "Attendance record not found"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var parseErr *timecalc.ParseError
	if errors.As(err, &parseErr) {
		ValidationError(w, map[string]string{parseErr.Field: parseErr.Error()})
		return
	}

	for _, m := range attendanceErrors {
		if errors.Is(err, m.target) {
			Fail(w, m.status, m.code, m.message, nil)
			return
		}
	}

	slog.Error("Unhandled error", "error", err)
	Fail(w, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred", nil)
}
