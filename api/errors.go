package api

import (
	"net/http"

	"github.com/thisisjab/exprzilla/fault"
)

// returnOnError writes the response for err and reports whether the handler
// has to stop. A nil err writes nothing.
func (s *Server) returnOnError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}

	s.handleError(w, r, err)
	return true
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	f, ok := fault.As(err)
	if !ok {
		s.internalServerError(w, r, err)
		return
	}

	switch f.Code() {
	case fault.BadInputCode:
		if md, ok := f.Metadata().(fault.FieldErrorsMetadata); ok {
			// This is a 422 error since it's related to specific field
			s.writeError(w, r, http.StatusUnprocessableEntity, apiResponse{
				Success: false,
				Message: f.Message(),
				Metadata: map[string]any{
					"fields": md,
				},
			})
		} else {
			s.writeError(w, r, http.StatusBadRequest, apiResponse{
				Success: false,
				Message: f.Message(),
			})
		}

	case fault.UnterminatedStringCode, fault.UnknownSymbolCode, fault.IntegerOverflowCode,
		fault.UnexpectedTokenCode, fault.NestingTooDeepCode,
		fault.TypeMismatchCode, fault.DivisionByZeroCode, fault.ArithmeticOverflowCode:
		// The source itself is wrong; report where.
		s.writeError(w, r, http.StatusUnprocessableEntity, apiResponse{
			Success:  false,
			Message:  f.Message(),
			Metadata: map[string]any{"diagnostic": diagnostic(f)},
		})

	default:
		s.internalServerError(w, r, f)
	}
}

func diagnostic(f fault.Fault) map[string]any {
	d := map[string]any{
		"code":  f.Code(),
		"stage": f.Stage(),
	}

	if pos := f.Pos(); pos.IsValid() {
		d["line"] = pos.Line
		d["column"] = pos.Column
		d["offset"] = pos.Offset
	}

	return d
}

func (s *Server) logError(r *http.Request, err error) {
	s.logger.Error("internal server error", "method", r.Method, "path", r.RequestURI, "remote-addr", r.RemoteAddr, "error", err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, response apiResponse) {
	s.writeJson(w, status, response, nil) //nolint:errcheck
}

func (s *Server) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	s.logError(r, err)
	s.writeError(w, r, http.StatusInternalServerError, apiResponse{Success: false, Message: "Internal server error"})
}
