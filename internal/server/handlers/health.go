// internal/server/handlers/health.go

package handlers

import (
	"net/http"
)

// Health reports that the process is serving requests
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
