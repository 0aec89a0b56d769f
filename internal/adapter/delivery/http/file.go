package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

const uploadField = "upfile"

type fileUseCase interface {
	Analyse(ctx context.Context, name, declaredType string, size int64, content io.Reader) (*entity.FileMetadata, error)
}

type fileHandler struct {
	useCase        fileUseCase
	maxUploadBytes int64
}

func newFileHandler(useCase fileUseCase, maxUploadBytes int64) *fileHandler {
	return &fileHandler{
		useCase:        useCase,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *fileHandler) analyse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, fileTooLargeResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, fileRequiredResponse)
		return
	}
	defer file.Close()

	meta, err := h.useCase.Analyse(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toFileResponse(meta))
}
