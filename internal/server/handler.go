package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	"net/http"
	"strconv"
)

type handler struct {
	replica replicaManager
}

type insertRowsRequest struct {
	Index int         `json:"index"`
	Rows  []table.Row `json:"rows"`
}

type insertColumnsRequest struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

type updateCellsRequest struct {
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Values []table.Row `json:"values"`
}

type viewRequest struct {
	From table.Position `json:"from"`
	To   table.Position `json:"to"`
}

type viewResponse struct {
	Rows []table.Row `json:"rows"`
}

func (h *handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.replica.Snapshot())
}

func (h *handler) view(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rows, err := h.replica.View(req.From, req.To)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Rows: rows})
}

func (h *handler) insertRows(w http.ResponseWriter, r *http.Request) {
	var req insertRowsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.done(w, h.replica.InsertRows(req.Index, req.Rows))
}

func (h *handler) insertColumns(w http.ResponseWriter, r *http.Request) {
	var req insertColumnsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.done(w, h.replica.InsertColumns(req.Index, req.Count))
}

func (h *handler) updateCells(w http.ResponseWriter, r *http.Request) {
	var req updateCellsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.done(w, h.replica.UpdateCells(req.Row, req.Col, req.Values))
}

func (h *handler) deleteRows(w http.ResponseWriter, r *http.Request) {
	index, length, err := span(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.done(w, h.replica.DeleteRows(index, length))
}

func (h *handler) deleteColumns(w http.ResponseWriter, r *http.Request) {
	index, length, err := span(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.done(w, h.replica.DeleteColumns(index, length))
}

// done answers a mutation with the resulting table state.
func (h *handler) done(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.replica.Snapshot())
}

var errBadRequest = errors.New("bad request")

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid body: %v", errBadRequest, err)
	}
	return nil
}

// span reads the index and length query parameters of a delete.
func span(r *http.Request) (index, length int, err error) {
	q := r.URL.Query()
	if index, err = strconv.Atoi(q.Get("index")); err != nil {
		return 0, 0, fmt.Errorf("%w: invalid index %q", errBadRequest, q.Get("index"))
	}
	if length, err = strconv.Atoi(q.Get("length")); err != nil {
		return 0, 0, fmt.Errorf("%w: invalid length %q", errBadRequest, q.Get("length"))
	}
	return index, length, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, table.ErrOutOfBounds):
		status = http.StatusUnprocessableEntity
	default:
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
