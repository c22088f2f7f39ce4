package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// maxCalculateBody bounds POST /attendance/calculate payloads.
const maxCalculateBody = 2 << 20

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Consistency(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)
	Repair(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockIn(r.Context(), clockRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ClockOut(r.Context(), clockRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StartBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.StartBreak(r.Context(), clockRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EndBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.EndBreak(r.Context(), clockRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.SummaryRequest{
		StaffID: middleware.StaffID(r.Context()),
		Year:    query.Get("year"),
		Month:   query.Get("month"),
		Net:     query.Get("net") == "true",
	}

	result, err := h.attendanceService.MonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Consistency implements AttendanceHandler.
func (h *attendanceHandlerImpl) Consistency(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.ConsistencyRequest{
		StaffID:   middleware.StaffID(r.Context()),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	result, err := h.attendanceService.CheckConsistency(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calculate implements AttendanceHandler.
func (h *attendanceHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req attendance.CalculateRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxCalculateBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Failed to decode calculate request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Repair implements AttendanceHandler.
func (h *attendanceHandlerImpl) Repair(w http.ResponseWriter, r *http.Request) {
	req := attendance.RepairRequest{StaffID: chi.URLParam(r, "staffID")}

	result, err := h.attendanceService.RepairOpenRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Open records repaired by admin",
		"staff_id", req.StaffID,
		"admin_staff_id", middleware.StaffID(r.Context()),
	)
	response.Success(w, result)
}

func clockRequest(r *http.Request) attendance.ClockRequest {
	return attendance.ClockRequest{StaffID: middleware.StaffID(r.Context())}
}
