package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"scanpoker-server/internal/jwt"
	"scanpoker-server/pkg/room"
)

type ctxKey int

const ctxHostKey ctxKey = iota

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	registry *room.Registry
}

// NewMux returns a new HTTP mux backed by the given room registry
func NewMux(version string, registry *room.Registry) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		registry: registry,
	}

	this.Router.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	this.Router.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

	rr := this.Router.PathPrefix("/room/{code:(?i)[a-z0-9]+}").Subrouter()
	rr.Use(this.roomMiddleware)

	// open endpoints
	{
		r := rr
		r.Methods(http.MethodGet).Path("").Handler(this.getRoom())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomWS())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postRoomPlayer())
		r.Methods(http.MethodPost).Path("/scanner").Handler(this.postRoomScanner())
		r.Methods(http.MethodPost).Path("/action").Handler(this.postRoomAction())
		r.Methods(http.MethodPost).Path("/leave").Handler(this.postRoomLeave())
	}

	// requires a dealer token
	{
		r := rr.NewRoute().Subrouter()
		r.Use(this.requireRole(jwt.RoleDealer))
		r.Methods(http.MethodPost).Path("/start").Handler(this.postRoomStart())
		r.Methods(http.MethodPost).Path("/new-hand").Handler(this.postRoomNewHand())
		r.Methods(http.MethodDelete).Path("").Handler(this.deleteRoom())
	}

	// requires a scanner token
	{
		r := rr.NewRoute().Subrouter()
		r.Use(this.requireRole(jwt.RoleScanner))
		r.Methods(http.MethodPost).Path("/scan").Handler(this.postRoomScan())
	}

	return this
}

// roomMiddleware resolves {code} to a live room host
func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, err := m.registry.Get(gmux.Vars(r)["code"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxHostKey, host)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// requireRole requires a bearer token granting the role on the room
// resolved by roomMiddleware
func (m *Mux) requireRole(role jwt.Role) gmux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("access_token")
			if token == "" {
				authHeader := strings.Split(r.Header.Get("Authorization"), " ")
				if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
					writeJSONError(w, http.StatusUnauthorized, nil)
					return
				}

				token = authHeader[1]
			}

			roomCode, tokenRole, err := jwt.ValidRoomRole(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			host := r.Context().Value(ctxHostKey).(*room.Host)
			if roomCode != host.Code() || tokenRole != role {
				writeJSONError(w, http.StatusForbidden, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
