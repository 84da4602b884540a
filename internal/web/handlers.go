package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/gacha"
	"github.com/gourmet-gacha/gacha/internal/services"
)

type handlers struct {
	catalog   services.Catalog
	spinDelay time.Duration
}

// session rebuilds the presentation state of a fresh visit from the catalog.
func (h *handlers) session() gacha.State {
	st := gacha.NewState()
	if ds := h.catalog.Dataset(); ds != nil {
		return st.Loaded(ds)
	}
	if err := h.catalog.LastError(); err != nil {
		return st.LoadFailed(err)
	}
	return st
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	renderState(w, r, http.StatusOK, h.session())
}

// panel is polled by the loading page until the dataset is in.
func (h *handlers) panel(w http.ResponseWriter, r *http.Request) {
	renderState(w, r, http.StatusOK, h.session())
}

func (h *handlers) draw(w http.ResponseWriter, r *http.Request) {
	logger := config.GetLogger()
	query := strings.TrimSpace(r.FormValue("q"))

	st, ok := h.session().WithQuery(query).BeginDraw()
	if !ok {
		renderState(w, r, http.StatusOK, st)
		return
	}

	if h.spinDelay > 0 {
		timer := time.NewTimer(h.spinDelay)
		select {
		case <-r.Context().Done():
			timer.Stop()
			logger.Debug().Str("query", query).Msg("Draw abandoned by client")
			return
		case <-timer.C:
		}
	}

	result, err := h.catalog.Draw(r.Context(), query)
	if err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("Draw failed")
		renderState(w, r, http.StatusOK, gacha.NewState().LoadFailed(err))
		return
	}

	renderState(w, r, http.StatusOK, st.Finish(result))
}

// reset returns to the input after an empty outcome. No state is kept
// between requests, so this is a fresh ready state with an empty query.
func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	renderState(w, r, http.StatusOK, h.session())
}

func (h *handlers) apiDraw(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	result, err := h.catalog.Draw(r.Context(), query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, &apperrors.ErrDatasetNotReady{}) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Status())
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
