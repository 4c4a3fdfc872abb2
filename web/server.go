package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"magcal-go/calib"
	"magcal-go/chart"
	"magcal-go/samples"
	"magcal-go/snippet"
)

// maxUpload bounds the size of a posted sample file.
const maxUpload = 32 << 20

// Server exposes calibration runs over HTTP and pushes results to websocket
// clients through Hub.
type Server struct {
	Hub *Hub

	field float64

	mu        sync.RWMutex
	report    *calib.Report
	raw       []calib.Sample
	corrected []calib.Sample
}

// NewServer returns a server whose fits default to the given target field.
func NewServer(field float64) *Server {
	return &Server{
		Hub:   NewHub(),
		field: field,
	}
}

// Handler returns the HTTP routes. The hub must be running for websocket
// clients to receive anything.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.Hub, w, r)
	})

	mux.HandleFunc("/fit", s.handleFit)
	mux.HandleFunc("/transform", s.handleTransform)
	mux.HandleFunc("/snippet", s.handleSnippet)
	mux.HandleFunc("/chart", chart.Handler(s.clouds))
	mux.HandleFunc("/projections.png", func(w http.ResponseWriter, r *http.Request) {
		raw, corrected := s.clouds()
		w.Header().Set("Content-Type", "image/png")
		if err := chart.Projections(w, raw, corrected); err != nil {
			log.Printf("web: projections: %v", err)
		}
	})
	return mux
}

// Start runs the hub and serves HTTP on port until the listener fails.
func (s *Server) Start(port int) error {
	go s.Hub.Run()

	addr := fmt.Sprintf(":%d", port)
	log.Printf("HTTP Server listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Publish records a finished run as the latest one and broadcasts it.
func (s *Server) Publish(r *calib.Report, raw []calib.Sample) {
	corrected := calib.Apply(raw, r.Transform)
	s.mu.Lock()
	s.report = r
	s.raw = raw
	s.corrected = corrected
	s.mu.Unlock()

	if err := s.Hub.Publish("report", r); err != nil {
		log.Printf("web: publish report: %v", err)
	}
}

// Latest returns the most recent report, or nil before the first fit.
func (s *Server) Latest() *calib.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

func (s *Server) clouds() (raw, corrected []calib.Sample) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw, s.corrected
}

type fitError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Remedy  string `json:"remedy,omitempty"`
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "POST a sample file", http.StatusMethodNotAllowed)
		return
	}
	field := s.field
	if v := r.URL.Query().Get("field"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad field %q", v), http.StatusBadRequest)
			return
		}
		field = f
	}

	raw, err := samples.Read(http.MaxBytesReader(w, r.Body, maxUpload))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := calib.Calibrate(raw, field)
	if err != nil {
		log.Printf("web: fit of %d samples failed: %v", len(raw), err)
		writeJSON(w, http.StatusUnprocessableEntity, fitError{
			Error:   calib.Kind(err),
			Message: err.Error(),
			Remedy:  calib.Remedy(err),
		})
		return
	}
	log.Printf("web: fitted %d samples, radius %.3f±%.3f", report.Samples, report.Radius.Mean, report.Radius.StdDev)
	s.Publish(report, raw)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	report := s.Latest()
	if report == nil {
		http.Error(w, "no calibration yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSnippet(w http.ResponseWriter, r *http.Request) {
	report := s.Latest()
	if report == nil {
		http.Error(w, "no calibration yet", http.StatusNotFound)
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "c"
	}
	b, err := snippet.Format(lang, report.Transform)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(b)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}
