package http

import (
	"net/http"
	"strings"

	"lifelog/internal/core"
	"lifelog/internal/log"
)

type (
	// Amount may arrive either as integer cents or as a decimal string
	// ("12.34" or "12,34"); cents win when both are set.
	expenseRequest struct {
		Date        string `json:"date"`
		AmountCents int64  `json:"amountCents"`
		Amount      string `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}

	sleepRequest struct {
		Date      string `json:"date"`
		SleepTime int    `json:"sleepTime"`
		WakeTime  int    `json:"wakeTime"`
		Quality   int    `json:"quality"`
		Duration  int    `json:"duration"`
		Nap       bool   `json:"nap"`
	}

	studyRequest struct {
		Date     string `json:"date"`
		Category string `json:"category"`
		Minutes  int    `json:"minutes"`
		Title    string `json:"title"`
	}

	// Attendance times are pointers so a missing field maps to "not
	// recorded" instead of midnight.
	habitRequest struct {
		Date      string `json:"date"`
		Breakfast int    `json:"breakfast"`
		Lunch     int    `json:"lunch"`
		Dinner    int    `json:"dinner"`
		Laundry   bool   `json:"laundry"`
		Cleaning  bool   `json:"cleaning"`
		Shower    bool   `json:"shower"`
		Skincare  bool   `json:"skincare"`
		CheckIn   *int   `json:"checkIn"`
		CheckOut  *int   `json:"checkOut"`
		Leave     *int   `json:"leave"`
		Steps     int    `json:"steps"`
	}

	createResponse struct {
		ID     int64       `json:"id"`
		Domain core.Domain `json:"domain"`
		Date   string      `json:"date"`
	}
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}

	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	cents := req.AmountCents
	if cents == 0 && strings.TrimSpace(req.Amount) != "" {
		cents, err = core.ParseDecimalToCents(req.Amount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
	}

	rec := core.ExpenseRecord{
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Category:    core.ExpenseCategory(strings.ToUpper(strings.TrimSpace(req.Category))),
		Description: sanitizeInput(req.Description),
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.creator.CreateExpense(r.Context(), rec)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to save expense",
			log.FieldError, err.Error(),
			log.FieldAmountCents, rec.Amount.Cents,
			log.FieldCategory, string(rec.Category))
		writeError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}

	s.httpLog.LogRecordStored(r.Context(), string(core.DomainExpenses), id, rec.Date.Key())
	writeJSON(w, http.StatusCreated, createResponse{ID: id, Domain: core.DomainExpenses, Date: rec.Date.Key()})
}

func (s *Server) handleCreateSleep(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}

	var req sleepRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rec := core.SleepRecord{
		Date:      date,
		SleepTime: core.TimeOfDay(req.SleepTime),
		WakeTime:  core.TimeOfDay(req.WakeTime),
		Quality:   req.Quality,
		Duration:  req.Duration,
		Nap:       req.Nap,
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.creator.CreateSleep(r.Context(), rec)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to save sleep log",
			log.FieldError, err.Error(),
			log.FieldRecordDate, rec.Date.Key())
		writeError(w, http.StatusInternalServerError, "failed to save sleep log")
		return
	}

	s.httpLog.LogRecordStored(r.Context(), string(core.DomainSleep), id, rec.Date.Key())
	writeJSON(w, http.StatusCreated, createResponse{ID: id, Domain: core.DomainSleep, Date: rec.Date.Key()})
}

func (s *Server) handleCreateStudy(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}

	var req studyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rec := core.StudyRecord{
		Date:     date,
		Category: sanitizeInput(req.Category),
		Minutes:  req.Minutes,
		Title:    sanitizeInput(req.Title),
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.creator.CreateStudy(r.Context(), rec)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to save study session",
			log.FieldError, err.Error(),
			log.FieldCategory, rec.Category)
		writeError(w, http.StatusInternalServerError, "failed to save study session")
		return
	}

	s.httpLog.LogRecordStored(r.Context(), string(core.DomainStudy), id, rec.Date.Key())
	writeJSON(w, http.StatusCreated, createResponse{ID: id, Domain: core.DomainStudy, Date: rec.Date.Key()})
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	if !requirePOST(w, r) {
		return
	}

	var req habitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rec := core.HabitRecord{
		Date:      date,
		Breakfast: core.MealStatus(req.Breakfast),
		Lunch:     core.MealStatus(req.Lunch),
		Dinner:    core.MealStatus(req.Dinner),
		Laundry:   req.Laundry,
		Cleaning:  req.Cleaning,
		Shower:    req.Shower,
		Skincare:  req.Skincare,
		CheckIn:   timeOfDay(req.CheckIn),
		CheckOut:  timeOfDay(req.CheckOut),
		Leave:     timeOfDay(req.Leave),
		Steps:     req.Steps,
	}
	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.creator.CreateHabit(r.Context(), rec)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to save habit log",
			log.FieldError, err.Error(),
			log.FieldRecordDate, rec.Date.Key())
		writeError(w, http.StatusInternalServerError, "failed to save habit log")
		return
	}

	s.httpLog.LogRecordStored(r.Context(), string(core.DomainHabits), id, rec.Date.Key())
	writeJSON(w, http.StatusCreated, createResponse{ID: id, Domain: core.DomainHabits, Date: rec.Date.Key()})
}

// requirePOST rejects non-POST methods, reporting whether to continue.
func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
