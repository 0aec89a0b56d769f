package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/skip2/go-qrcode"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

const qrCodeSize = 256

type shortenerUseCase interface {
	ShortenURL(ctx context.Context, originalURL string) (*entity.URL, error)
	ResolveShortURL(ctx context.Context, id int64) (*entity.URL, error)
}

type shortenerHandler struct {
	useCase       shortenerUseCase
	publicBaseURL string
}

func newShortenerHandler(useCase shortenerUseCase, publicBaseURL string) *shortenerHandler {
	return &shortenerHandler{
		useCase:       useCase,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (h *shortenerHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest

	if err := decodeRequest(r, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	url, err := h.useCase.ShortenURL(r.Context(), req.URL)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toShortURLResponse(url))
}

func (h *shortenerHandler) redirect(w http.ResponseWriter, r *http.Request) {
	url, ok := h.resolve(w, r)
	if !ok {
		return
	}

	http.Redirect(w, r, url.OriginalURL, http.StatusFound)
}

func (h *shortenerHandler) qrCode(w http.ResponseWriter, r *http.Request) {
	url, ok := h.resolve(w, r)
	if !ok {
		return
	}

	content := h.publicBaseURL + "/api/shorturl/" + strconv.FormatInt(url.ID, 10)

	png, err := qrcode.Encode(content, qrcode.Medium, qrCodeSize)
	if err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// resolve looks up the URL named by the path. Short URLs that are not positive
// integers can't exist and are reported as not found.
func (h *shortenerHandler) resolve(w http.ResponseWriter, r *http.Request) (*entity.URL, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "shortURL"), 10, 64)
	if err != nil || id <= 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, notFoundResponse)
		return nil, false
	}

	url, err := h.useCase.ResolveShortURL(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrURLNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, notFoundResponse)
			return nil, false
		}

		renderError(w, r, err)
		return nil, false
	}

	return url, true
}
