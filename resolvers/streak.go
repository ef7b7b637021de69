package resolvers

import (
	"errors"
	"net/http"

	"github.com/writewithwrabit/wordstreak/models"
	"github.com/writewithwrabit/wordstreak/streak"
)

type streakResponse struct {
	Streak          int    `json:"streak"`
	LastCheckedDate string `json:"lastCheckedDate"`
	Status          string `json:"status"`
}

type checkResponse struct {
	streakResponse
	Notice  string `json:"notice"`
	Outcome string `json:"outcome"`
	Words   int    `json:"words"`
}

func newStreakResponse(state models.StreakState) streakResponse {
	return streakResponse{
		Streak:          state.Streak,
		LastCheckedDate: state.LastCheckedDate,
		Status:          streak.StatusText(state),
	}
}

type queryResolver struct{ *Resolver }

// Streak returns the stored streak without checking today's note.
func (r *queryResolver) Streak(w http.ResponseWriter, req *http.Request) {
	state, err := r.streaks.Current(req.Context())
	if err != nil {
		r.logger.ErrorContext(req.Context(), "load streak", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load streak"})
		return
	}

	writeJSON(w, http.StatusOK, newStreakResponse(state))
}

type mutationResolver struct{ *Resolver }

// CheckStreak runs the manual check. A lookup failure is a 503 so the
// caller knows to retry later.
func (r *mutationResolver) CheckStreak(w http.ResponseWriter, req *http.Request) {
	res, err := r.streaks.Trigger(req.Context())
	if errors.Is(err, streak.ErrLookupFailure) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		r.logger.ErrorContext(req.Context(), "check streak", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not check streak"})
		return
	}

	writeJSON(w, http.StatusOK, checkResponse{
		streakResponse: newStreakResponse(res.State),
		Notice:         streak.NoticeText(res.State),
		Outcome:        string(res.Outcome),
		Words:          res.Words,
	})
}
