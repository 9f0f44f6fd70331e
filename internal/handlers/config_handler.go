package handlers

import (
	"net/http"

	"kyn/internal/config"
)

// ConfigHandler exposes feature gates for the SPA. Pages backed by
// external providers (maps, weather, video calls) only render when the
// server carries the relevant key.
type ConfigHandler struct {
	cfg *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

type featureGates struct {
	Maps struct {
		Enabled bool   `json:"enabled"`
		APIKey  string `json:"apiKey,omitempty"`
	} `json:"maps"`
	Weather struct {
		Enabled bool   `json:"enabled"`
		APIKey  string `json:"apiKey,omitempty"`
	} `json:"weather"`
	VideoCall struct {
		Enabled bool   `json:"enabled"`
		URL     string `json:"url,omitempty"`
	} `json:"videoCall"`
}

// Features reports which optional integrations are configured
func (h *ConfigHandler) Features(w http.ResponseWriter, r *http.Request) {
	var gates featureGates

	gates.Maps.Enabled = h.cfg.MapsAPIKey != ""
	gates.Maps.APIKey = h.cfg.MapsAPIKey

	gates.Weather.Enabled = h.cfg.WeatherAPIKey != ""
	gates.Weather.APIKey = h.cfg.WeatherAPIKey

	gates.VideoCall.Enabled = h.cfg.VideoCallURL != ""
	gates.VideoCall.URL = h.cfg.VideoCallURL

	writeJSON(w, http.StatusOK, gates)
}
