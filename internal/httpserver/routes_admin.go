// internal/httpserver/routes_admin.go
//
// Admin read models, gated on the users.is_admin flag:
//   - GET /admin/users    → all users with session counts and totals.
//   - GET /admin/sessions → all sessions, newest first, with usernames.
//   - GET /admin/stats    → global counts, average score, top 5 scores.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountAdmin registers /admin routes behind auth + admin guard.
func (s *Server) mountAdmin() {
	s.r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Use(s.requireAdmin())
		r.Get("/users", s.handleAdminUsers)
		r.Get("/sessions", s.handleAdminSessions)
		r.Get("/stats", s.handleAdminStats)
	})
}

// requireAdmin rejects callers whose user row lacks the admin flag.
func (s *Server) requireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
			if me == nil {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			u, err := s.findUserByID(me.ID)
			if err != nil || !u.IsAdmin {
				http.Error(w, `{"error":"Forbidden"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// handleAdminUsers lists all users with per-user session aggregates.
func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
        SELECT u.id, u.username, u.email, u.is_admin, u.created_at,
               COUNT(g.id), COALESCE(SUM(g.score),0)
        FROM users u
        LEFT JOIN game_sessions g ON g.owner_id = u.id AND g.state='scored'
        GROUP BY u.id
        ORDER BY u.created_at ASC`)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	type userRow struct {
		ID          string `json:"id"`
		Username    string `json:"username"`
		Email       string `json:"email"`
		IsAdmin     bool   `json:"isAdmin"`
		CreatedAt   string `json:"createdAt"`
		GamesPlayed int    `json:"gamesPlayed"`
		TotalScore  int    `json:"totalScore"`
	}
	out := []userRow{}
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(&ur.ID, &ur.Username, &ur.Email, &ur.IsAdmin,
			&ur.CreatedAt, &ur.GamesPlayed, &ur.TotalScore); err == nil {
			out = append(out, ur)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleAdminSessions lists every session with its owner's username.
func (s *Server) handleAdminSessions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
        SELECT g.id, u.username, u.email, g.difficulty, g.state,
               COALESCE(g.accuracy,0), COALESCE(g.score,0), COALESCE(g.time_taken,0), g.created_at
        FROM game_sessions g
        JOIN users u ON u.id = g.owner_id
        ORDER BY g.created_at DESC`)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	type adminSession struct {
		ID         string  `json:"id"`
		Username   string  `json:"username"`
		Email      string  `json:"email"`
		Difficulty string  `json:"difficulty"`
		State      string  `json:"state"`
		Accuracy   float64 `json:"accuracy"`
		Score      int     `json:"score"`
		TimeTaken  int     `json:"timeTaken"`
		CreatedAt  string  `json:"createdAt"`
	}
	out := []adminSession{}
	for rows.Next() {
		var as adminSession
		if err := rows.Scan(&as.ID, &as.Username, &as.Email, &as.Difficulty,
			&as.State, &as.Accuracy, &as.Score, &as.TimeTaken, &as.CreatedAt); err == nil {
			out = append(out, as)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleAdminStats returns global counters and the top five scores.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	var totalUsers, totalSessions int
	var avgScore float64
	if err := s.db.QueryRowContext(r.Context(),
		`SELECT COUNT(1) FROM users`).Scan(&totalUsers); err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if err := s.db.QueryRowContext(r.Context(),
		`SELECT COUNT(1) FROM game_sessions`).Scan(&totalSessions); err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = s.db.QueryRowContext(r.Context(),
		`SELECT COALESCE(AVG(score),0) FROM game_sessions WHERE state='scored'`).Scan(&avgScore)

	type topScore struct {
		Username string `json:"username"`
		Score    int    `json:"score"`
	}
	top := []topScore{}
	rows, err := s.db.QueryContext(r.Context(), `
        SELECT u.username, g.score
        FROM game_sessions g JOIN users u ON u.id = g.owner_id
        WHERE g.state='scored'
        ORDER BY g.score DESC LIMIT 5`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var ts topScore
			if err := rows.Scan(&ts.Username, &ts.Score); err == nil {
				top = append(top, ts)
			}
		}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"totalUsers":    totalUsers,
		"totalSessions": totalSessions,
		"averageScore":  avgScore,
		"topScores":     top,
	})
}
