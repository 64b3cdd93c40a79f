package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Simplici0/toolcost/internal/consumption"
	"github.com/Simplici0/toolcost/internal/metrics"
	"github.com/Simplici0/toolcost/internal/report"
)

const maxAPIBody = 1 << 20

// evaluateRequest is the stateless counterpart of a session: everything needed
// for one evaluation travels in the body.
type evaluateRequest struct {
	Basis  consumption.Basis         `json:"basis"`
	// Annual is decoded over the server defaults, so omitted fields keep them.
	Annual *consumption.AnnualParams `json:"annual,omitempty"`
	// Compare holds 1-based tool positions; zero leaves the comparison out.
	Compare struct {
		Reference   int `json:"reference"`
		Alternative int `json:"alternative"`
	} `json:"compare"`
	Tools []consumption.Spec `json:"tools"`
}

type apiError struct {
	Error string `json:"error"`
}

func (s *server) handleAPIEvaluate(w http.ResponseWriter, r *http.Request) {
	annual := s.annual
	req := evaluateRequest{Annual: &annual}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body: " + err.Error()})
		return
	}

	for i := range req.Tools {
		kind, err := consumption.ParseKind(string(req.Tools[i].Kind))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: fmt.Sprintf("tool %d: %v", i+1, err)})
			return
		}
		req.Tools[i].Kind = kind
	}
	tools, err := consumption.Tools(req.Tools)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	basis := req.Basis
	basis.Mode = consumption.ParseMode(string(basis.Mode))
	if basis.DepthPerHole <= 0 {
		basis.DepthPerHole = s.defaults.DepthPerHole
	}

	ev := consumption.EvaluateBasis(basis, tools)
	metrics.ObserveEvaluation("api", ev.Results)

	writeJSON(w, http.StatusOK, report.New(ev, req.Compare.Reference-1, req.Compare.Alternative-1, annualParams(req.Annual, s.annual)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode JSON response", "error", err)
	}
}

func annualParams(req *consumption.AnnualParams, fallback consumption.AnnualParams) consumption.AnnualParams {
	if req == nil {
		return fallback
	}
	return *req
}
