// internal/httpserver/routes_game.go
//
// HTTP handlers for the game session lifecycle plus the leaderboard read
// model. Transitions and scoring live in internal/game; this file maps
// transport payloads to the service and service errors to status codes:
//   InvalidDifficulty → 400, SessionNotFound → 404, NotOwner → 403,
//   AlreadySubmitted → 409 (hard rejection, no stored result).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"ghostcode/internal/game"
)

// startReq/Res payloads for POST /game/start.
type startReq struct {
	Difficulty string `json:"difficulty"`
}
type startRes struct {
	GameID     string `json:"gameId"`
	Difficulty string `json:"difficulty"`
	Code       string `json:"code"`
}

// handleStart creates a new session for the authenticated caller. The
// generated code is disclosed here exactly once; at submission time it is
// re-read from the stored record.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	res, err := s.svc.Start(r.Context(), me.ID, req.Difficulty)
	if err != nil {
		if errors.Is(err, game.ErrInvalidDifficulty) {
			http.Error(w, `{"error":"invalid_difficulty"}`, http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("start game")
		http.Error(w, `{"error":"start_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(startRes{
		GameID:     res.SessionID,
		Difficulty: string(res.Difficulty),
		Code:       res.Code,
	})
}

// submitReq/Res payloads for POST /game/submit.
type submitReq struct {
	GameID        string `json:"gameId"`
	SubmittedCode string `json:"submittedCode"`
	TimeTaken     int    `json:"timeTaken"`
}
type submitRes struct {
	Accuracy    float64 `json:"accuracy"`
	Score       int     `json:"score"`
	CorrectCode string  `json:"correctCode"`
}

// handleSubmit records the caller's recalled code and returns the scored
// feedback including the original code.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.GameID == "" || req.TimeTaken < 0 {
		http.Error(w, `{"error":"bad_request"}`, http.StatusBadRequest)
		return
	}
	res, err := s.svc.Submit(r.Context(), me.ID, req.GameID, req.SubmittedCode, req.TimeTaken)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrSessionNotFound):
			http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
		case errors.Is(err, game.ErrNotOwner):
			http.Error(w, `{"error":"not_your_game"}`, http.StatusForbidden)
		case errors.Is(err, game.ErrAlreadySubmitted):
			http.Error(w, `{"error":"already_submitted"}`, http.StatusConflict)
		default:
			log.Error().Err(err).Str("gameId", req.GameID).Msg("submit game")
			http.Error(w, `{"error":"submit_failed"}`, http.StatusInternalServerError)
		}
		return
	}
	_ = json.NewEncoder(w).Encode(submitRes{
		Accuracy:    res.Accuracy,
		Score:       res.Score,
		CorrectCode: res.CorrectCode,
	})
}

// lbRow is one leaderboard entry.
type lbRow struct {
	GameID     string  `json:"gameId"`
	Username   string  `json:"username"`
	Difficulty string  `json:"difficulty"`
	Score      int     `json:"score"`
	Accuracy   float64 `json:"accuracy"`
	TimeTaken  int     `json:"timeTaken"`
	CreatedAt  string  `json:"createdAt"`
}

// handleLeaderboard returns the top 20 completed sessions by score.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
        SELECT g.id, u.username, g.difficulty, g.score, g.accuracy, g.time_taken, g.created_at
        FROM game_sessions g
        JOIN users u ON u.id = g.owner_id
        WHERE g.state = 'scored'
        ORDER BY g.score DESC, g.created_at ASC
        LIMIT 20`)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := []lbRow{}
	for rows.Next() {
		var lr lbRow
		if err := rows.Scan(&lr.GameID, &lr.Username, &lr.Difficulty, &lr.Score,
			&lr.Accuracy, &lr.TimeTaken, &lr.CreatedAt); err == nil {
			out = append(out, lr)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}
