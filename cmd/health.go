package main

import (
	"encoding/json"
	"net/http"
	"time"
)

func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   app.serviceName,
	})
}
