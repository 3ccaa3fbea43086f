package server

import (
	"errors"
	"net/http"

	"github.com/napolitain/ascension/internal/game"
	"github.com/napolitain/ascension/internal/loader"
	"github.com/napolitain/ascension/internal/models"
	"github.com/napolitain/ascension/internal/solver"
)

func (s *Server) handleState(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleCatalog(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, http.StatusOK, loader.Document(s.session.Catalog()))
}

func (s *Server) handleSchema(rw http.ResponseWriter, r *http.Request) {
	data, err := loader.CatalogSchemaJSON()
	if err != nil {
		s.log.Printf("catalog schema: %v", err)
		writeError(rw, http.StatusInternalServerError, "schema unavailable")
		return
	}
	rw.Header().Set("Content-Type", "application/schema+json")
	_, _ = rw.Write(data)
}

type adviceResponse struct {
	Kind     solver.ActionKind `json:"kind"`
	TargetID string            `json:"targetId"`
	Name     string            `json:"name"`
	Costs    models.Costs      `json:"costs"`
	ROI      float64           `json:"roi"`
}

func (s *Server) handleAdvice(rw http.ResponseWriter, r *http.Request) {
	action, ok := solver.Advise(s.session.Snapshot())
	if !ok {
		rw.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(rw, http.StatusOK, adviceResponse{
		Kind:     action.Kind,
		TargetID: action.TargetID,
		Name:     action.Name,
		Costs:    action.Costs,
		ROI:      action.ROI,
	})
}

func (s *Server) handleCollect(rw http.ResponseWriter, r *http.Request) {
	rt := models.ResourceType(r.PathValue("resource"))
	s.respond(rw, s.session.Collect(rt))
}

func (s *Server) handlePurchase(rw http.ResponseWriter, r *http.Request) {
	s.respond(rw, s.session.Purchase(r.PathValue("id")))
}

func (s *Server) handleUpgrade(rw http.ResponseWriter, r *http.Request) {
	s.respond(rw, s.session.Upgrade(r.PathValue("id")))
}

func (s *Server) handleResearch(rw http.ResponseWriter, r *http.Request) {
	s.respond(rw, s.session.Research(r.PathValue("id")))
}

type chronicleResponse struct {
	Message string        `json:"message"`
	State   game.Snapshot `json:"state"`
}

func (s *Server) handleChronicle(rw http.ResponseWriter, r *http.Request) {
	msg := s.session.Chronicle(r.Context())
	writeJSON(rw, http.StatusOK, chronicleResponse{
		Message: msg,
		State:   s.session.Snapshot(),
	})
}

// respond maps an action result to a status: unknown ids are 404, declined
// actions 409, success returns the new snapshot
func (s *Server) respond(rw http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(rw, http.StatusOK, s.session.Snapshot())
	case game.IsUnknown(err):
		writeError(rw, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInsufficientResources),
		errors.Is(err, game.ErrNotOwned),
		errors.Is(err, game.ErrWrongEra),
		errors.Is(err, game.ErrAlreadyResearched):
		writeError(rw, http.StatusConflict, err.Error())
	default:
		s.log.Printf("action failed: %v", err)
		writeError(rw, http.StatusInternalServerError, "internal error")
	}
}
