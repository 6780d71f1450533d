package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ForecastLens/internal/model"
	"ForecastLens/internal/session"
	"ForecastLens/internal/source"
)

type openRequest struct {
	Symbol string        `json:"symbol"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Margin *model.Margin `json:"margin,omitempty"`
}

type zoomRequest struct {
	X         float64 `json:"x"`
	DeltaY    float64 `json:"deltaY"`
	PlotWidth float64 `json:"plotWidth"`
}

type panRequest struct {
	FromX     float64 `json:"fromX"`
	ToX       float64 `json:"toX"`
	PlotWidth float64 `json:"plotWidth"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// layout returns the requested layout, or the zero layout when no size
// was given so the manager default applies.
func (r openRequest) layout() model.Layout {
	if r.Width <= 0 || r.Height <= 0 {
		return model.Layout{}
	}
	l := model.Layout{Width: r.Width, Height: r.Height, Margin: model.DefaultLayout().Margin}
	if r.Margin != nil {
		l.Margin = *r.Margin
	}
	return l
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "views": s.Sessions.Len()})
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	syms, err := s.Sessions.Symbols(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if syms == nil {
		syms = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbols": syms})
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	v, err := s.Sessions.Open(r.Context(), req.Symbol, req.layout())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v.Frame())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v.Frame())
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(mux.Vars(r)["id"]); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	var req zoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, zoomView(v, req.X, req.DeltaY, req.PlotWidth))
}

// zoomView applies a wheel gesture. Horizontal-only wheel events carry no
// vertical delta and leave the view as it is.
func zoomView(v *session.View, x, deltaY, plotWidth float64) session.Frame {
	if deltaY == 0 {
		return v.Frame()
	}
	return v.Zoom(x, deltaY, plotWidth)
}

func (s *Server) handlePan(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	var req panRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, v.Pan(req.FromX, req.ToX, req.PlotWidth))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v.Reset())
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	data, err := v.SVG()
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	v, ok := s.view(w, r)
	if !ok {
		return
	}
	data, err := v.PNG()
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) (*session.View, bool) {
	v, err := s.Sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return nil, false
	}
	return v, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, source.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %v", err)
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}
