package mux

import (
	"errors"
	"net/http"
	"time"

	"scanpoker-server/internal/jwt"
	"scanpoker-server/internal/util"
	"scanpoker-server/pkg/deck"
	"scanpoker-server/pkg/game"
	"scanpoker-server/pkg/room"
	"scanpoker-server/pkg/token"
)

func hostFromContext(r *http.Request) *room.Host {
	return r.Context().Value(ctxHostKey).(*room.Host)
}

type healthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Version: m.version,
			Time:    time.Now(),
		})
	}
}

type createRoomResponse struct {
	Code        string `json:"code"`
	DealerToken string `json:"dealerToken"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host, err := m.registry.Create()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		dealerID, err := token.Generate(20)
		if err != nil {
			m.registry.Remove(host.Code())
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		signed, err := jwt.Sign(host.Code(), jwt.RoleDealer)
		if err != nil {
			m.registry.Remove(host.Code())
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		host.Update(func(room *game.Room) {
			room.SetDealer(dealerID)
		})

		writeJSON(w, http.StatusCreated, createRoomResponse{
			Code:        host.Code(),
			DealerToken: signed,
		})
	}
}

func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, hostFromContext(r).Snapshot())
	}
}

func (m *Mux) postRoomPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Name             string `json:"name"`
			VisuallyImpaired bool   `json:"visuallyImpaired"`
		}
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Name == "" {
			payload.Name = util.GetRandomName()
		}

		var player *game.Player
		var joinErr error
		hostFromContext(r).Update(func(room *game.Room) {
			player, joinErr = room.AddPlayer(payload.Name)
			if joinErr == nil {
				player.VisuallyImpaired = payload.VisuallyImpaired
			}
		})

		if joinErr != nil {
			writeJSONError(w, http.StatusConflict, joinErr)
			return
		}

		writeJSON(w, http.StatusCreated, player)
	}
}

type scannerResponse struct {
	ScannerToken string `json:"scannerToken"`
}

func (m *Mux) postRoomScanner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := hostFromContext(r)

		var assignErr error
		host.Update(func(room *game.Room) {
			assignErr = room.AssignScanner()
		})

		if assignErr != nil {
			writeJSONError(w, http.StatusConflict, assignErr)
			return
		}

		signed, err := jwt.Sign(host.Code(), jwt.RoleScanner)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, scannerResponse{ScannerToken: signed})
	}
}

func (m *Mux) postRoomStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := hostFromContext(r)

		var startErr error
		host.Update(func(room *game.Room) {
			startErr = room.StartGame()
		})

		if startErr != nil {
			writeJSONError(w, http.StatusConflict, startErr)
			return
		}

		writeJSON(w, http.StatusOK, host.Snapshot())
	}
}

func (m *Mux) postRoomNewHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := hostFromContext(r)

		var startErr error
		host.Update(func(room *game.Room) {
			startErr = room.StartNewHand()
		})

		if startErr != nil {
			writeJSONError(w, http.StatusConflict, startErr)
			return
		}

		writeJSON(w, http.StatusOK, host.Snapshot())
	}
}

func (m *Mux) postRoomScan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var card deck.Card
		if !decodeRequest(w, r, &card) {
			return
		}

		host := hostFromContext(r)
		host.Update(func(room *game.Room) {
			room.Apply(game.ScanCard{Card: &card})
		})

		writeJSON(w, http.StatusOK, host.Snapshot())
	}
}

func (m *Mux) postRoomAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var envelope game.Envelope
		if !decodeRequest(w, r, &envelope) {
			return
		}

		action, err := envelope.Decode()
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		host := hostFromContext(r)
		host.Update(func(room *game.Room) {
			room.Apply(action)
		})

		writeJSON(w, http.StatusOK, host.Snapshot())
	}
}

func (m *Mux) postRoomLeave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			PlayerID string `json:"playerId"`
		}
		if !decodeRequest(w, r, &payload) {
			return
		}

		var leaveErr error
		hostFromContext(r).Update(func(room *game.Room) {
			leaveErr = room.RemovePlayer(payload.PlayerID)
		})

		if errors.Is(leaveErr, game.ErrUnknownPlayer) {
			writeJSONError(w, http.StatusNotFound, leaveErr)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func (m *Mux) deleteRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := hostFromContext(r)

		host.Update(func(room *game.Room) {
			room.Disband()
		})
		m.registry.Remove(host.Code())

		writeJSON(w, http.StatusOK, statusOK)
	}
}
