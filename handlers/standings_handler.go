package handlers

import (
	"net/http"

	"github.com/Dosada05/doubles-cup/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	reportService    services.ReportService
}

func NewStandingsHandler(ss services.StandingsService, rs services.ReportService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss, reportService: rs}
}

func (h *StandingsHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := queryGroup(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.Standings(r.Context(), id, group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) SpecialsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	group, err := queryGroup(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := queryRound(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	specials, err := h.standingsService.SpecialsRanking(r.Context(), id, group, round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"specials": specials}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.standingsService.Report(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ArchiveHandler обрабатывает POST /tournaments/{tournamentID}/report/archive
func (h *StandingsHandler) ArchiveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actor, err := actorFromRequest(r)
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	res, err := h.reportService.Archive(r.Context(), actor, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"key": res.Key, "location": res.Location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
