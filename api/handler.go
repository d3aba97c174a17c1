package api

import (
	"net/http"
)

type sourceRequest struct {
	Source *string `json:"source"`
}

func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, error) {
	var req sourceRequest
	if err := s.readJson(w, r, &req); err != nil {
		return "", err
	}

	if req.Source == nil {
		return "", fieldFault("source", "Field is required.")
	}

	return *req.Source, nil
}

// evalHandler evaluates {"source": "..."} and returns the integer value.
func (s *Server) evalHandler(w http.ResponseWriter, r *http.Request) {
	src, err := s.readSource(w, r)
	if s.returnOnError(w, r, err) {
		return
	}

	s.evals.Add(1)
	res, err := s.evaluator.Run(r.Context(), src)
	if err != nil {
		s.faults.Add(1)
	}
	if s.returnOnError(w, r, err) {
		return
	}

	s.writeJson( // nolint:errcheck
		w,
		http.StatusOK,
		apiResponse{
			Success: true,
			Data: map[string]any{
				"value": res.Value,
				"tree":  res.Tree.String(),
			},
			Metadata: map[string]any{"run_id": res.RunID},
		},
		nil,
	)
}

// tokensHandler returns the token sequence of {"source": "..."}.
func (s *Server) tokensHandler(w http.ResponseWriter, r *http.Request) {
	src, err := s.readSource(w, r)
	if s.returnOnError(w, r, err) {
		return
	}

	tokens, err := s.evaluator.Tokenize(src)
	if s.returnOnError(w, r, err) {
		return
	}

	out := make([]map[string]any, len(tokens))
	for i, tok := range tokens {
		item := map[string]any{
			"kind":   tok.Kind.String(),
			"line":   tok.Pos.Line,
			"column": tok.Pos.Column,
		}
		if tok.Literal != "" {
			item["literal"] = tok.Literal
		}
		out[i] = item
	}

	s.writeJson( // nolint:errcheck
		w,
		http.StatusOK,
		apiResponse{
			Success: true,
			Data:    map[string]any{"tokens": out},
		},
		nil,
	)
}
