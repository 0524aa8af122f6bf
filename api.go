package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type API struct {
	Store ScoreStore
}

func (a *API) HandleSaveScore(w http.ResponseWriter, r *http.Request) {
	var request SaveScoreRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&request); err != nil {
		http.Error(w, "invalid score payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		http.Error(w, "invalid score payload: unexpected data after JSON body", http.StatusBadRequest)
		return
	}

	var score float64
	if request.Score != nil {
		score = *request.Score
	}

	saved, err := a.Store.SubmitScore(r.Context(), score)
	if err != nil {
		log.WithError(err).Error("Unable to save score.")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, SaveScoreResponse{
		Status: "success",
		Score:  saved,
	})
}

func (a *API) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	scores, err := a.Store.Load(r.Context())
	if err != nil {
		log.WithError(err).Error("Unable to load scores.")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, scores)
}

func (a *API) HandleIndex(w http.ResponseWriter, r *http.Request) {
	scores, err := a.Store.Load(r.Context())
	if err != nil {
		log.WithError(err).Error("Unable to load scores.")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page, err := RenderIndex(scores)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := a.Store.(Pinger); ok {
		if err := pinger.Ping(r.Context()); err != nil {
			log.WithError(err).Warn("Health check failed.")
			writeJSONStatus(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Error:  err.Error(),
			})
			return
		}
	}

	writeJSON(w, HealthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	writeJSONStatus(w, http.StatusOK, value)
}

func writeJSONStatus(w http.ResponseWriter, status int, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}
