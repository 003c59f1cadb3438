package stream

import (
	"encoding/json"
	"net/http"
)

// Routes mounts /ws, /api/paths, /api/snapshot and /healthz, plus
// /metrics when a metrics handler is given.
func (h *Hub) Routes(metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/api/paths", h.handlePaths)
	mux.HandleFunc("/api/snapshot", h.handleSnapshot)
	mux.HandleFunc("/healthz", handleHealth)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}

func (h *Hub) handlePaths(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(h.paths)
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Latest())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}
