package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/gacha"
	"github.com/gourmet-gacha/gacha/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("gacha").ParseFS(templateFS, "templates/*.tmpl"))

// panelView is what the "panel" template renders for one state.
type panelView struct {
	Phase    string
	Query    string
	Message  string
	Listings []models.Listing
	PoolSize int
	CanDraw  bool
}

func newPanelView(st gacha.State) panelView {
	return panelView{
		Phase:    st.Phase.String(),
		Query:    st.Query,
		Message:  st.Message,
		Listings: st.Result.Listings,
		PoolSize: st.Result.PoolSize,
		CanDraw:  st.CanDraw(),
	}
}

// renderState writes the panel fragment for htmx requests and the full page otherwise.
func renderState(w http.ResponseWriter, r *http.Request, status int, st gacha.State) {
	name := "base"
	if IsHTMXRequest(r.Context()) {
		name = "panel"
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, newPanelView(st)); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
