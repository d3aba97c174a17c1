package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/thisisjab/exprzilla/fault"
)

type apiResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *Server) bodyLimit() int64 {
	if s.cfg.MaxBodyBytes > 0 {
		return s.cfg.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

// readJson decodes exactly one JSON value from the request body into dst.
// Client mistakes come back as BadInputCode faults.
func (s *Server) readJson(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.bodyLimit())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeFault(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fault.New(fault.BadInputCode, "Body must only contain a single JSON value.")
	}

	return nil
}

// decodeFault translates an encoding/json or body reader error.
func decodeFault(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		invalidErr  *json.InvalidUnmarshalError
		tooLargeErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &invalidErr):
		// dst was not a pointer, which is a programming error
		panic(err)

	case errors.As(err, &tooLargeErr):
		return fault.Newf(fault.BadInputCode, "Body must not be larger than %d bytes.", tooLargeErr.Limit)

	case errors.As(err, &syntaxErr):
		return fault.Newf(fault.BadInputCode, "Body contains badly-formed JSON at character %d.", syntaxErr.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return fault.New(fault.BadInputCode, "Body contains badly-formed JSON.")

	case errors.Is(err, io.EOF):
		return fault.New(fault.BadInputCode, "Body cannot be empty.")

	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return fault.Newf(fault.BadInputCode, "Body contains badly-formed JSON at character %d.", typeErr.Offset)
		}
		return fieldFault(typeErr.Field, "Expected type "+typeErr.Type.String()+".")

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fieldFault(name, "Key is unknown.")
	}

	return err
}

func fieldFault(field, message string) fault.Fault {
	return fault.New(fault.BadInputCode, "Invalid request body.").WithMetadata(fault.FieldErrorsMetadata{
		field: []string{message},
	})
}

func (s *Server) writeJson(w http.ResponseWriter, status int, data apiResponse, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(js, '\n')) //nolint:errcheck

	return nil
}
