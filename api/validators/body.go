package validators

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
)

const maxBodyBytes = 1 << 20

// DecodeJSONObject reads the request body as a JSON object. Numbers are kept
// as json.Number so integers can be told apart from fractions. An empty body
// yields an empty map.
func DecodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]any{"error": err.Error()})
	}
	if decoder.More() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request body").
			WithDetails(map[string]any{"error": "unexpected data after JSON object"})
	}

	switch body := payload.(type) {
	case map[string]any:
		return body, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body must be a JSON object")
	}
}
