package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/realDragonium/picocraft/config"
)

// API is the local http endpoint used to control a running server.
type API struct {
	reload func() error
	status StatusSource
	log    zerolog.Logger
}

func NewAPI(reload func() error, status StatusSource) *API {
	return &API{
		reload: reload,
		status: status,
		log:    config.ComponentLogger("api"),
	}
}

func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/reload", api.reloadHandler)
	mux.HandleFunc("/status", api.statusHandler)
	return mux
}

func (api *API) Run(ctx context.Context, addr string) error {
	return serveHTTP(ctx, addr, api.Handler())
}

func (api *API) reloadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	err := api.reload()
	if err != nil {
		api.log.Warn().Err(err).Msg("reload failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "success")
}

func (api *API) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.status.Status().ResponseJSON())
}
