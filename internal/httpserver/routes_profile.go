// internal/httpserver/routes_profile.go
//
// Per-user read models over completed sessions:
//   - GET /profile/stats    → totals, average accuracy, highest score,
//     games by difficulty.
//   - GET /profile/sessions → paginated completed-session history.
// Pure aggregation; no state transitions happen here.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// statsRes is the shape of /profile/stats.
type statsRes struct {
	TotalGames        int            `json:"totalGames"`
	AverageAccuracy   float64        `json:"averageAccuracy"`
	HighestScore      int            `json:"highestScore"`
	TotalScore        int            `json:"totalScore"`
	GamesByDifficulty map[string]int `json:"gamesByDifficulty"`
}

// handleStats aggregates the caller's completed sessions.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var res statsRes
	row := s.db.QueryRowContext(r.Context(), `
        SELECT COUNT(1), COALESCE(AVG(accuracy),0), COALESCE(MAX(score),0), COALESCE(SUM(score),0)
        FROM game_sessions WHERE owner_id=? AND state='scored'`, me.ID)
	if err := row.Scan(&res.TotalGames, &res.AverageAccuracy, &res.HighestScore, &res.TotalScore); err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}

	res.GamesByDifficulty = map[string]int{"easy": 0, "medium": 0, "hard": 0}
	rows, err := s.db.QueryContext(r.Context(), `
        SELECT difficulty, COUNT(1) FROM game_sessions
        WHERE owner_id=? AND state='scored' GROUP BY difficulty`, me.ID)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var d string
		var n int
		if err := rows.Scan(&d, &n); err == nil {
			res.GamesByDifficulty[d] = n
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// sessionRow is one entry in the /profile/sessions history.
type sessionRow struct {
	ID         string  `json:"id"`
	Difficulty string  `json:"difficulty"`
	Accuracy   float64 `json:"accuracy"`
	Score      int     `json:"score"`
	TimeTaken  int     `json:"timeTaken"`
	CreatedAt  string  `json:"createdAt"`
}

// sessionsRes is the paginated history envelope.
type sessionsRes struct {
	Data       []sessionRow `json:"data"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

// handleSessions lists the caller's completed sessions, newest first.
// Query params: page (1-based, default 1), limit (default 10, max 50).
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var total int
	if err := s.db.QueryRowContext(r.Context(), `
        SELECT COUNT(1) FROM game_sessions WHERE owner_id=? AND state='scored'`,
		me.ID).Scan(&total); err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}

	rows, err := s.db.QueryContext(r.Context(), `
        SELECT id, difficulty, accuracy, score, time_taken, created_at
        FROM game_sessions
        WHERE owner_id=? AND state='scored'
        ORDER BY created_at DESC
        LIMIT ? OFFSET ?`, me.ID, limit, (page-1)*limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := []sessionRow{}
	for rows.Next() {
		var sr sessionRow
		if err := rows.Scan(&sr.ID, &sr.Difficulty, &sr.Accuracy, &sr.Score,
			&sr.TimeTaken, &sr.CreatedAt); err == nil {
			out = append(out, sr)
		}
	}

	totalPages := (total + limit - 1) / limit
	_ = json.NewEncoder(w).Encode(sessionsRes{
		Data: out, Total: total, Page: page, Limit: limit, TotalPages: totalPages,
	})
}

// queryInt parses an integer query param with a default.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
