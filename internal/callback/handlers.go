// Package callback serves the browser side of the Misfit authorization-code
// flow: it redirects to the authorization dialog, receives the code on the
// redirect URI, exchanges it and persists the resulting token.
package callback

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/Chandler-Sun/misfit-cloud-api-wrapper/client"
)

// StateCookie holds the state value issued by /login.
const StateCookie = "misfit_oauth_state"

const stateTTL = 10 * time.Minute

// Exchanger is the part of *client.Client the handlers need.
type Exchanger interface {
	AuthorizeURLWithState(state string) string
	Exchange(ctx context.Context, code string) (*client.TokenResponse, error)
}

// TokenSaver persists an exchanged token.
type TokenSaver interface {
	Save(tok *oauth2.Token) error
}

// Handler implements the OAuth redirect endpoints.
type Handler struct {
	ex       Exchanger
	store    TokenSaver
	log      zerolog.Logger
	newState func() string
}

// NewHandler creates a Handler.
func NewHandler(ex Exchanger, store TokenSaver, log zerolog.Logger) *Handler {
	return &Handler{ex: ex, store: store, log: log, newState: uuid.NewString}
}

// NewRouter wires the callback server routes.
func NewRouter(h *Handler) *mux.Router {
	root := mux.NewRouter()
	root.Use(recoverer(h.log), accessLog(h.log))

	root.HandleFunc("/login", h.Login).Methods(http.MethodGet)
	root.HandleFunc("/callback", h.Callback).Methods(http.MethodGet)
	root.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return root
}

// Login handles GET /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := h.newState()
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.ex.AuthorizeURLWithState(state), http.StatusFound)
}

// Callback handles GET /callback, the registered redirect URI.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		callbacksTotal.WithLabelValues(outcomeDenied).Inc()
		h.log.Warn().Str("error", e).Msg("authorization denied")
		writePage(w, http.StatusBadRequest, page{Title: "Authorization denied", Detail: e})
		return
	}

	if !h.validState(r, q.Get("state")) {
		callbacksTotal.WithLabelValues(outcomeBadState).Inc()
		h.log.Warn().Msg("state mismatch on callback")
		writePage(w, http.StatusBadRequest, page{Title: "Invalid state", Detail: "Start again from /login."})
		return
	}
	clearState(w)

	code := q.Get("code")
	if code == "" {
		callbacksTotal.WithLabelValues(outcomeMissingCode).Inc()
		writePage(w, http.StatusBadRequest, page{Title: "Missing code", Detail: "The redirect carried no authorization code."})
		return
	}

	start := time.Now()
	tok, err := h.ex.Exchange(r.Context(), code)
	if err != nil {
		callbacksTotal.WithLabelValues(outcomeExchangeError).Inc()
		h.log.Error().Err(err).
			Int("status", client.StatusCode(err)).
			Dur("elapsed", time.Since(start)).
			Msg("code exchange failed")
		writePage(w, http.StatusBadGateway, page{Title: "Token exchange failed", Detail: exchangeDetail(err)})
		return
	}

	if err := h.store.Save(tok.OAuth2Token()); err != nil {
		callbacksTotal.WithLabelValues(outcomeStoreError).Inc()
		h.log.Error().Stack().Err(err).Msg("saving token failed")
		writePage(w, http.StatusInternalServerError, page{Title: "Could not save token"})
		return
	}

	callbacksTotal.WithLabelValues(outcomeOK).Inc()
	h.log.Info().Dur("elapsed", time.Since(start)).Msg("token stored")
	writePage(w, http.StatusOK, page{Title: "Authorization complete", Detail: "You can close this window."})
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) validState(r *http.Request, got string) bool {
	c, err := r.Cookie(StateCookie)
	if err != nil || c.Value == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(got)) == 1
}

func clearState(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: StateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func exchangeDetail(err error) string {
	switch {
	case client.IsHTTPStatus(err):
		return "Misfit rejected the authorization code."
	case client.IsTransport(err):
		return "Misfit could not be reached."
	default:
		return "Misfit returned an unexpected response."
	}
}
