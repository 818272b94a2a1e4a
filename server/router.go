package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sanity-io/litter"

	"holdem-tracker/server/engine"
	"holdem-tracker/server/game"
)

func Router(svc *game.Service) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	r.Post("/api/hands", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PlayerStacks []int `json:"player_stacks"`
		}
		if !readJSON(w, r, &req) {
			return
		}
		h, err := svc.CreateHand(req.PlayerStacks)
		if err != nil {
			writeError(w, err)
			return
		}
		dumpHand(h)
		writeJSON(w, h)
	})

	r.Post("/api/hands/action", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HandID         string `json:"hand_id"`
			PlayerPosition int    `json:"player_position"`
			ActionType     string `json:"action_type"`
			Amount         int    `json:"amount"`
		}
		if !readJSON(w, r, &req) {
			return
		}
		h, err := svc.RecordAction(r.Context(), req.HandID, req.PlayerPosition,
			engine.ActionKind(req.ActionType), req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		dumpHand(h)
		writeJSON(w, h)
	})

	r.Post("/api/hands/deal-cards", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HandID          string            `json:"hand_id"`
			CardsByPosition map[string]string `json:"cards_by_position"`
		}
		if !readJSON(w, r, &req) {
			return
		}
		byPos := make(map[int]string, len(req.CardsByPosition))
		for k, v := range req.CardsByPosition {
			pos, err := strconv.Atoi(k)
			if err != nil {
				http.Error(w, "cards_by_position keys must be positions", http.StatusBadRequest)
				return
			}
			byPos[pos] = v
		}
		h, err := svc.DealHoleCards(r.Context(), req.HandID, byPos)
		if err != nil {
			writeError(w, err)
			return
		}
		dumpHand(h)
		writeJSON(w, h)
	})

	r.Post("/api/hands/deal-board", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HandID     string `json:"hand_id"`
			BoardCards string `json:"board_cards"`
		}
		if !readJSON(w, r, &req) {
			return
		}
		h, err := svc.DealBoardCards(r.Context(), req.HandID, req.BoardCards)
		if err != nil {
			writeError(w, err)
			return
		}
		dumpHand(h)
		writeJSON(w, h)
	})

	r.Get("/api/hands", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}
		items, err := svc.History(r.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, items)
	})

	r.Get("/api/hands/{handID}", func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.GetHand(r.Context(), chi.URLParam(r, "handID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, h)
	})

	return r
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps domain rejections onto status codes; anything that is not
// a known rejection is a server fault.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrHandNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrMalformedCard),
		errors.Is(err, engine.ErrInvalidBoardLength),
		errors.Is(err, engine.ErrDuplicateCard),
		errors.Is(err, engine.ErrCardsAlreadyDealt),
		errors.Is(err, engine.ErrIllegalAmount),
		errors.Is(err, engine.ErrInvalidAction),
		errors.Is(err, engine.ErrUnknownPlayer),
		errors.Is(err, engine.ErrInvalidSeatCount),
		errors.Is(err, engine.ErrHandAlreadyCompleted):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func dumpHand(h *engine.Hand) {
	if !debugState {
		return
	}
	log.Printf("hand %s:\n%s", h.ID, litter.Sdump(h))
	if h.Completed {
		for _, pos := range h.WinnerPositions {
			if d := h.DescribeHand(pos); d != "" {
				log.Printf("hand %s: position %d shows %s", h.ID, pos, d)
			}
		}
	}
}
