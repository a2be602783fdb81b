package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/rbhz/global-dictionary/app/ui"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

// pageBaseURL is the origin of in-process API calls made by the page
const pageBaseURL = "http://dictionary.local"

// handlerTransport serves client requests with handler, without network
type handlerTransport struct {
	handler http.Handler
}

// RoundTrip executes req against handler.
// Route context of the calling request is dropped so the router matches req from scratch.
func (t handlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, nil))
	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

// pageService renders the dictionary page on the server.
// Every request runs a fresh UI session: query params q and lang feed the form.
type pageService struct {
	client *http.Client
}

// Index renders the page, searching q when given
func (p pageService) Index(w http.ResponseWriter, r *http.Request) {
	session := ui.NewSession(pageBaseURL, p.client, nil)
	query := r.URL.Query()
	if lang := query.Get("lang"); lang != "" {
		session.SetTargetLang(lang)
	}
	session.SetQuery(query.Get("q"))
	session.Submit(r.Context())

	buf := &bytes.Buffer{}
	if err := ui.RenderHTML(buf, ui.BuildView(session.State())); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", session.ID.String()).Msg("failed to render page")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("failed to write response")
	}
}
