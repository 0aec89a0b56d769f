package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

type trackerUseCase interface {
	CreateUser(ctx context.Context, username string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	AddExercise(ctx context.Context, userID string, in entity.ExerciseInput) (*entity.ExerciseEntry, error)
	QueryLog(ctx context.Context, userID string, q entity.LogQuery) (*entity.ExerciseLog, error)
}

type trackerHandler struct {
	useCase trackerUseCase
}

func newTrackerHandler(useCase trackerUseCase) *trackerHandler {
	return &trackerHandler{useCase: useCase}
}

func (h *trackerHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest

	if err := decodeRequest(r, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	user, err := h.useCase.CreateUser(r.Context(), req.Username)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(user))
}

func (h *trackerHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.useCase.ListUsers(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toUserResponses(users))
}

func (h *trackerHandler) addExercise(w http.ResponseWriter, r *http.Request) {
	var req addExerciseRequest

	if err := decodeRequest(r, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	entry, err := h.useCase.AddExercise(r.Context(), chi.URLParam(r, "userID"), req.toInput())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toExerciseResponse(entry))
}

func (h *trackerHandler) queryLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	log, err := h.useCase.QueryLog(r.Context(), chi.URLParam(r, "userID"), entity.LogQuery{
		From:  query.Get("from"),
		To:    query.Get("to"),
		Limit: query.Get("limit"),
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toLogResponse(log))
}
