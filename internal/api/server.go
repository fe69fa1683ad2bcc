// Package api serves the circuit to a browser workspace over HTTP. Handlers
// render JSON and share a single circuit guarded by a mutex.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/san-kum/circuitlab/internal/catalog"
	"github.com/san-kum/circuitlab/internal/circuit"
)

type Server struct {
	mu      sync.Mutex
	circuit *circuit.Circuit
	catalog *catalog.Catalog
	logger  *log.Logger
	started time.Time
}

func NewServer(c *circuit.Circuit, cat *catalog.Catalog, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{circuit: c, catalog: cat, logger: logger, started: time.Now()}
}

// Handler returns the routed API wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /catalog", s.listCatalog)
	mux.HandleFunc("GET /components", s.listComponents)
	mux.HandleFunc("POST /components", s.addComponent)
	mux.HandleFunc("DELETE /components", s.clearComponents)
	mux.HandleFunc("DELETE /components/{index}", s.removeComponent)
	mux.HandleFunc("PUT /components/{index}/position", s.moveComponent)
	mux.HandleFunc("GET /totals", s.totals)
	return Cors(mux)
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// ComponentBody is the wire shape of a placed component.
type ComponentBody struct {
	Kind      string   `json:"tipo"`
	Magnitude *float64 `json:"valor"`
	Icon      string   `json:"imagen"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
}

type PositionBody struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "circuitlab-api",
		Uptime:    time.Since(s.started).String(),
		Details: map[string]string{
			"go_version": runtime.Version(),
			"num_cpu":    strconv.Itoa(runtime.NumCPU()),
		},
	})
}

func (s *Server) listCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Entries())
}

func (s *Server) listComponents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	comps := s.circuit.Components()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, toBodies(comps))
}

func (s *Server) addComponent(w http.ResponseWriter, r *http.Request) {
	var body ComponentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if body.Magnitude == nil {
		s.writeError(w, http.StatusBadRequest, "missing valor")
		return
	}

	kind := circuit.ParseKind(body.Kind)
	icon := body.Icon
	if icon == "" {
		icon = s.catalog.Icon(kind)
	}
	comp, err := circuit.NewComponent(kind, *body.Magnitude, icon, circuit.Position{X: body.X, Y: body.Y})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	if err := s.circuit.Add(comp); err != nil {
		s.logger.Printf("persist after add: %v", err)
	}
	index := s.circuit.Len() - 1
	s.mu.Unlock()

	w.Header().Set("Location", "/components/"+strconv.Itoa(index))
	s.writeJSON(w, http.StatusCreated, toBody(comp))
}

func (s *Server) clearComponents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if err := s.circuit.Clear(); err != nil {
		s.logger.Printf("persist after clear: %v", err)
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeComponent(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "no such component")
		return
	}

	s.mu.Lock()
	err = s.circuit.Remove(index)
	s.mu.Unlock()

	if s.mutationFailed(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) moveComponent(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "no such component")
		return
	}
	var body PositionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	s.mu.Lock()
	err = s.circuit.Move(index, circuit.Position{X: body.X, Y: body.Y})
	comps := s.circuit.Components()
	s.mu.Unlock()

	if s.mutationFailed(w, err) {
		return
	}
	s.writeJSON(w, http.StatusOK, toBody(comps[index]))
}

func (s *Server) totals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t := s.circuit.Totals()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, t)
}

// mutationFailed maps a bad index to 404. Persistence failures are logged
// only: the in-memory change already happened.
func (s *Server) mutationFailed(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, circuit.ErrIndexOutOfRange):
		s.writeError(w, http.StatusNotFound, "no such component")
		return true
	default:
		s.logger.Printf("persist after mutation: %v", err)
		return false
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("Error encoding response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

func toBody(c circuit.Component) ComponentBody {
	m := c.Magnitude
	return ComponentBody{
		Kind:      string(c.Kind),
		Magnitude: &m,
		Icon:      c.Icon,
		X:         c.Position.X,
		Y:         c.Position.Y,
	}
}

func toBodies(comps []circuit.Component) []ComponentBody {
	out := make([]ComponentBody, len(comps))
	for i, c := range comps {
		out[i] = toBody(c)
	}
	return out
}
