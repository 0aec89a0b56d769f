package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ajg/form"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

// maxFormMemory is the part of a multipart form kept in memory while parsing.
const maxFormMemory = 1 << 20

// decodeRequest decodes a JSON, form encoded or multipart body into v.
// Form fields without a matching struct field are ignored. An empty body
// leaves v untouched so that the use case reports the missing fields.
func decodeRequest(r *http.Request, v any) error {
	if render.GetRequestContentType(r) == render.ContentTypeJSON {
		if err := render.DecodeJSON(r.Body, v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}

	d := form.NewDecoder(nil)
	d.IgnoreUnknownKeys(true)

	return d.DecodeValues(v, r.PostForm)
}

// renderError writes the error response matching the kind of err.
// Errors of unknown kind are logged and hidden from the client.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *entity.Error

	if errors.As(err, &domainErr) {
		switch {
		case errors.Is(domainErr, entity.ErrValidation):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: domainErr.Error()})
			return
		case errors.Is(domainErr, entity.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: domainErr.Error()})
			return
		}
	}

	httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, serverErrorResponse)
}
