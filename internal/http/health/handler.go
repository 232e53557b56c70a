// Package health serves the load-balancer liveness probe.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Handler reports process liveness. It deliberately probes nothing
// downstream: a Firestore or Storage hiccup should surface as request
// errors, not as the load balancer recycling the process.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{Status: "healthy"})
}
