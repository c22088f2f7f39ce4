package attendance

import "errors"

// Attendance domain errors
var (
	// Clock errors
	ErrAlreadyClockedIn    = errors.New("you are already clocked in")
	ErrNotClockedIn        = errors.New("you are not clocked in")
	ErrInconsistentRecords = errors.New("more than one open attendance record exists")

	// Break errors
	ErrBreakAlreadyStarted = errors.New("break has already been taken for this shift")
	ErrBreakNotStarted     = errors.New("break has not been started")
	ErrBreakAlreadyEnded   = errors.New("break has already ended")

	// General errors
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrNothingToRepair = errors.New("no duplicate open records to repair")
)

// InconsistencyMessage is shown in place of totals when stored records fail validation.
const InconsistencyMessage = "Attendance data is inconsistent. Please contact an administrator."
