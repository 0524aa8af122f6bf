package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func Router(api *API, staticDir string) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger)

	router.HandleFunc("/", api.HandleIndex).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/save_score", api.HandleSaveScore).Methods(http.MethodPost)
	router.HandleFunc("/get_scores", api.HandleGetScores).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/healthz", api.HandleHealth).Methods(http.MethodGet, http.MethodHead)

	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))),
	).Methods(http.MethodGet, http.MethodHead)

	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start),
		}).Debug("Handled request.")
	})
}
