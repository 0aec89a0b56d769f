package http

import (
	"encoding/json"

	"github.com/vadimbarashkov/microservices/internal/entity"
)

// shortenRequest is the body of a request to shorten a URL.
type shortenRequest struct {
	URL string `json:"url" form:"url"`
}

// shortURLResponse pairs an original URL with its short URL.
type shortURLResponse struct {
	OriginalURL string `json:"original_url"`
	ShortURL    int64  `json:"short_url"`
}

func toShortURLResponse(url *entity.URL) shortURLResponse {
	return shortURLResponse{
		OriginalURL: url.OriginalURL,
		ShortURL:    url.ID,
	}
}

type createUserRequest struct {
	Username string `json:"username" form:"username"`
}

// userResponse is a user without its log.
type userResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		Username: user.Username,
		ID:       user.ID,
	}
}

func toUserResponses(users []*entity.User) []userResponse {
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return resp
}

// addExerciseRequest accepts the duration both as a JSON number and as a string.
type addExerciseRequest struct {
	Description string      `json:"description" form:"description"`
	Duration    json.Number `json:"duration" form:"duration"`
	Date        string      `json:"date" form:"date"`
}

func (req addExerciseRequest) toInput() entity.ExerciseInput {
	return entity.ExerciseInput{
		Description: req.Description,
		Duration:    req.Duration.String(),
		Date:        req.Date,
	}
}

// exerciseResponse is a created exercise merged with its owner. ID is the owner's id.
type exerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

func toExerciseResponse(entry *entity.ExerciseEntry) exerciseResponse {
	return exerciseResponse{
		Username:    entry.User.Username,
		Description: entry.Exercise.Description,
		Duration:    entry.Exercise.Duration,
		Date:        entity.FormatDate(entry.Exercise.Date),
		ID:          entry.User.ID,
	}
}

type logEntryResponse struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logResponse struct {
	Username string             `json:"username"`
	Count    int                `json:"count"`
	ID       string             `json:"_id"`
	Log      []logEntryResponse `json:"log"`
}

func toLogResponse(log *entity.ExerciseLog) logResponse {
	entries := make([]logEntryResponse, 0, len(log.Log))
	for _, e := range log.Log {
		entries = append(entries, logEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        entity.FormatDate(e.Date),
		})
	}

	return logResponse{
		Username: log.User.Username,
		Count:    log.Count,
		ID:       log.User.ID,
		Log:      entries,
	}
}

type fileResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

func toFileResponse(meta *entity.FileMetadata) fileResponse {
	return fileResponse{
		Name: meta.Name,
		Type: meta.Type,
		Size: meta.Size,
	}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

var (
	invalidRequestBodyResponse = errorResponse{Error: "invalid request body"}
	fileRequiredResponse       = errorResponse{Error: "file is required"}
	fileTooLargeResponse       = errorResponse{Error: "file is too large"}
	notFoundResponse           = errorResponse{Error: "not found"}
	serverErrorResponse        = errorResponse{Error: "server error occurred"}
)
