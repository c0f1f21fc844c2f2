package http

import (
	"net/http"
	"strconv"
	"time"

	"lifelog/internal/core"
	"lifelog/internal/log"
	"lifelog/internal/stats"
)

type (
	expenseStatsResponse struct {
		Days       int                       `json:"days"`
		From       string                    `json:"from"`
		To         string                    `json:"to"`
		Trend      []stats.ExpenseTrendPoint `json:"trend"`
		Categories []stats.CategoryStat      `json:"categories"`
		Summary    stats.Summary             `json:"summary"`
	}

	sleepStatsResponse struct {
		Year    int                     `json:"year"`
		Month   int                     `json:"month"`
		Stats   stats.SleepMonthStats   `json:"stats"`
		Trend   []stats.SleepTrendPoint `json:"trend"`
		Summary stats.Summary           `json:"durationSummary"`
	}

	studyStatsResponse struct {
		Days       int                       `json:"days"`
		From       string                    `json:"from"`
		To         string                    `json:"to"`
		Categories []stats.StudyCategoryStat `json:"categories"`
		Trend      []stats.StudyTrendPoint   `json:"trend"`
		Summary    stats.Summary             `json:"summary"`
	}

	habitStatsResponse struct {
		Days       int                     `json:"days"`
		From       string                  `json:"from"`
		To         string                  `json:"to"`
		Meals      stats.MealBreakdown     `json:"meals"`
		Attendance stats.AttendanceRates   `json:"attendance"`
		Habits     []stats.HabitStat       `json:"habits"`
		Trend      []stats.HabitTrendPoint `json:"trend"`
		Summary    stats.Summary           `json:"stepsSummary"`
	}
)

// trailingWindow builds the bucket window for a days-based stats endpoint,
// ending today.
func trailingWindow(days int) ([]core.Date, core.Date, core.Date, error) {
	window, err := stats.TrailingDays(core.DateOf(time.Now()), days)
	if err != nil || len(window) == 0 {
		return nil, core.Date{}, core.Date{}, stats.ErrInvalidRange
	}
	return window, window[0], window[len(window)-1], nil
}

func (s *Server) handleExpenseStats(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	days, err := parseDays(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := "expenses:" + strconv.Itoa(days)
	if resp, ok := s.expenseStats.Get(key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	window, from, to, err := trailingWindow(days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.source.ExpensesBetween(r.Context(), from, to)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load expenses",
			log.FieldError, err.Error(), log.FieldDays, days)
		writeError(w, http.StatusInternalServerError, "failed to load expense statistics")
		return
	}

	trend := stats.ExpenseTrend(records, window)
	resp := expenseStatsResponse{
		Days:       days,
		From:       from.Key(),
		To:         to.Key(),
		Trend:      trend,
		Categories: stats.ExpenseByCategory(records),
		Summary:    stats.Summarize(stats.AmountSeries(trend)),
	}
	s.expenseStats.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSleepStats(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	year, month, err := parseYearMonth(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := "sleep:" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
	if resp, ok := s.sleepStats.Get(key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	records, err := s.source.SleepByMonth(r.Context(), year, month)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load sleep logs",
			log.FieldError, err.Error(), log.FieldYear, year, log.FieldMonth, month)
		writeError(w, http.StatusInternalServerError, "failed to load sleep statistics")
		return
	}

	monthStats, err := stats.SleepMonth(records, year, month)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	trend, err := stats.SleepMonthTrend(records, year, month)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := sleepStatsResponse{
		Year:    year,
		Month:   month,
		Stats:   monthStats,
		Trend:   trend,
		Summary: stats.Summarize(stats.DurationSeries(trend)),
	}
	s.sleepStats.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStudyStats(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	days, err := parseDays(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := "study:" + strconv.Itoa(days)
	if resp, ok := s.studyStats.Get(key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	window, from, to, err := trailingWindow(days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.source.StudyBetween(r.Context(), from, to)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load study sessions",
			log.FieldError, err.Error(), log.FieldDays, days)
		writeError(w, http.StatusInternalServerError, "failed to load study statistics")
		return
	}

	trend := stats.StudyByDate(records, window)
	resp := studyStatsResponse{
		Days:       days,
		From:       from.Key(),
		To:         to.Key(),
		Categories: stats.StudyByCategory(records),
		Trend:      trend,
		Summary:    stats.Summarize(stats.MinuteSeries(trend)),
	}
	s.studyStats.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHabitStats(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	days, err := parseDays(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := "habits:" + strconv.Itoa(days)
	if resp, ok := s.habitStats.Get(key); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	window, from, to, err := trailingWindow(days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.source.HabitsBetween(r.Context(), from, to)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load habit logs",
			log.FieldError, err.Error(), log.FieldDays, days)
		writeError(w, http.StatusInternalServerError, "failed to load habit statistics")
		return
	}

	trend := stats.HabitTrend(records, window)
	resp := habitStatsResponse{
		Days:       days,
		From:       from.Key(),
		To:         to.Key(),
		Meals:      stats.MealRegularity(records),
		Attendance: stats.AttendanceCompliance(records),
		Habits:     stats.HabitStats(records),
		Trend:      trend,
		Summary:    stats.Summarize(stats.StepSeries(trend)),
	}
	s.habitStats.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady performs a readiness check with dependency verification.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.creator == nil {
		checks["record_creator"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["record_creator"] = "ok"
	}

	if s.source == nil {
		checks["record_source"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["record_source"] = "ok"
	}

	checks["stats_cache"] = map[string]any{
		"expense_entries": s.expenseStats.Size(),
		"sleep_entries":   s.sleepStats.Size(),
		"study_entries":   s.studyStats.Size(),
		"habit_entries":   s.habitStats.Size(),
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.activeClients(),
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// requireGET rejects non-GET methods, reporting whether to continue.
func requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
