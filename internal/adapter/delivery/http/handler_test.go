package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/microservices/internal/entity"
)

type HandlersTestSuite struct {
	suite.Suite
	logger               *httplog.Logger
	shortenerUseCaseMock *MockShortenerUseCase
	trackerUseCaseMock   *MockTrackerUseCase
	fileUseCaseMock      *MockFileUseCase
	server               *httptest.Server
	e                    *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.shortenerUseCaseMock = NewMockShortenerUseCase(suite.T())
	suite.trackerUseCaseMock = NewMockTrackerUseCase(suite.T())
	suite.fileUseCaseMock = NewMockFileUseCase(suite.T())

	router := NewRouter(
		suite.logger,
		Options{PublicBaseURL: "https://sho.rt/", MaxUploadBytes: 1 << 10},
		suite.shortenerUseCaseMock,
		suite.trackerUseCaseMock,
		suite.fileUseCaseMock,
	)
	suite.server = httptest.NewServer(router)
	suite.T().Cleanup(func() {
		suite.server.Close()
	})

	suite.e = httpexpect.WithConfig(httpexpect.Config{
		BaseURL: suite.server.URL,
		Client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Reporter: httpexpect.NewAssertReporter(suite.T()),
	})
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.shortenerUseCaseMock.AssertExpectations(suite.T())
	suite.trackerUseCaseMock.AssertExpectations(suite.T())
	suite.fileUseCaseMock.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestPing() {
	const path = "/api/ping"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("pong")
	})
}

func (suite *HandlersTestSuite) TestShortenURL() {
	const path = "/api/shorturl"

	suite.Run("invalid request body", func() {
		suite.e.POST(path).
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "invalid request body")
	})

	suite.Run("invalid url", func() {
		suite.shortenerUseCaseMock.
			On("ShortenURL", mock.Anything, "ftp:/nope").
			Once().
			Return(nil, entity.ErrInvalidURL)

		suite.e.POST(path).
			WithFormField("url", "ftp:/nope").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			IsEqual(map[string]any{"error": "invalid url"})
	})

	suite.Run("server error", func() {
		suite.shortenerUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.com").
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			WithFormField("url", "https://example.com").
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("error", "server error occurred")
	})

	suite.Run("success with form", func() {
		suite.shortenerUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.com").
			Once().
			Return(&entity.URL{ID: 1, OriginalURL: "https://example.com"}, nil)

		suite.e.POST(path).
			WithFormField("url", "https://example.com").
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			IsEqual(map[string]any{"original_url": "https://example.com", "short_url": 1})
	})

	suite.Run("unknown form fields are ignored", func() {
		suite.shortenerUseCaseMock.
			On("ShortenURL", mock.Anything, "https://a.com").
			Once().
			Return(&entity.URL{ID: 2, OriginalURL: "https://a.com"}, nil)

		suite.e.POST(path).
			WithFormField("url", "https://a.com").
			WithFormField("extra", "x").
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("short_url", 2)
	})

	suite.Run("success with json", func() {
		suite.shortenerUseCaseMock.
			On("ShortenURL", mock.Anything, "https://example.com/a?b=c").
			Once().
			Return(&entity.URL{ID: 7, OriginalURL: "https://example.com/a?b=c"}, nil)

		suite.e.POST(path).
			WithJSON(map[string]string{"url": "https://example.com/a?b=c"}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("short_url", 7)
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	const path = "/api/shorturl/{shortURL}"

	suite.Run("not an integer", func() {
		suite.e.GET(path, "abc").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("error", "not found")
	})

	suite.Run("not positive", func() {
		suite.e.GET(path, "0").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("error", "not found")
	})

	suite.Run("url not found", func() {
		suite.shortenerUseCaseMock.
			On("ResolveShortURL", mock.Anything, int64(3)).
			Once().
			Return(nil, entity.ErrURLNotFound)

		suite.e.GET(path, "3").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("error", "not found")
	})

	suite.Run("server error", func() {
		suite.shortenerUseCaseMock.
			On("ResolveShortURL", mock.Anything, int64(3)).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path, "3").
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("error", "server error occurred")
	})

	suite.Run("success", func() {
		suite.shortenerUseCaseMock.
			On("ResolveShortURL", mock.Anything, int64(3)).
			Once().
			Return(&entity.URL{ID: 3, OriginalURL: "https://example.com"}, nil)

		suite.e.GET(path, "3").
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com")
	})
}

func (suite *HandlersTestSuite) TestQRCode() {
	const path = "/api/shorturl/{shortURL}/qrcode"

	suite.Run("url not found", func() {
		suite.shortenerUseCaseMock.
			On("ResolveShortURL", mock.Anything, int64(3)).
			Once().
			Return(nil, entity.ErrURLNotFound)

		suite.e.GET(path, "3").
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.shortenerUseCaseMock.
			On("ResolveShortURL", mock.Anything, int64(3)).
			Once().
			Return(&entity.URL{ID: 3, OriginalURL: "https://example.com"}, nil)

		body := suite.e.GET(path, "3").
			Expect().
			Status(http.StatusOK).
			ContentType("image/png").
			Body().Raw()

		suite.True(strings.HasPrefix(body, "\x89PNG"))
	})
}

func (suite *HandlersTestSuite) TestCreateUser() {
	const path = "/api/users"

	suite.Run("empty username", func() {
		suite.trackerUseCaseMock.
			On("CreateUser", mock.Anything, "").
			Once().
			Return(nil, entity.ErrEmptyUsername)

		suite.e.POST(path).
			WithFormField("username", "").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "username is required")
	})

	suite.Run("success", func() {
		suite.trackerUseCaseMock.
			On("CreateUser", mock.Anything, "alice").
			Once().
			Return(&entity.User{ID: "u1", Username: "alice"}, nil)

		suite.e.POST(path).
			WithFormField("username", "alice").
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			IsEqual(map[string]any{"username": "alice", "_id": "u1"})
	})

	suite.Run("submit button field", func() {
		suite.trackerUseCaseMock.
			On("CreateUser", mock.Anything, "alice").
			Once().
			Return(&entity.User{ID: "u1", Username: "alice"}, nil)

		suite.e.POST(path).
			WithFormField("username", "alice").
			WithFormField("submit", "Submit").
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("username", "alice")
	})

	suite.Run("multipart form", func() {
		suite.trackerUseCaseMock.
			On("CreateUser", mock.Anything, "bob").
			Once().
			Return(&entity.User{ID: "u2", Username: "bob"}, nil)

		suite.e.POST(path).
			WithMultipart().
			WithFormField("username", "bob").
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			IsEqual(map[string]any{"username": "bob", "_id": "u2"})
	})
}

func (suite *HandlersTestSuite) TestListUsers() {
	const path = "/api/users"

	suite.Run("server error", func() {
		suite.trackerUseCaseMock.
			On("ListUsers", mock.Anything).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError)
	})

	suite.Run("panic", func() {
		suite.trackerUseCaseMock.
			On("ListUsers", mock.Anything).
			Once().
			Run(func(mock.Arguments) {
				panic("boom")
			})

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().
			HasValue("error", "server error occurred")
	})

	suite.Run("empty", func() {
		suite.trackerUseCaseMock.
			On("ListUsers", mock.Anything).
			Once().
			Return([]*entity.User{}, nil)

		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			JSON().Array().IsEmpty()
	})

	suite.Run("success", func() {
		suite.trackerUseCaseMock.
			On("ListUsers", mock.Anything).
			Once().
			Return([]*entity.User{
				{ID: "u1", Username: "alice", Log: []string{"e1"}},
				{ID: "u2", Username: "bob"},
			}, nil)

		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			JSON().Array().
			IsEqual([]map[string]any{
				{"username": "alice", "_id": "u1"},
				{"username": "bob", "_id": "u2"},
			})
	})
}

func (suite *HandlersTestSuite) TestAddExercise() {
	const path = "/api/users/{userID}/exercises"

	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	suite.Run("user not found", func() {
		suite.trackerUseCaseMock.
			On("AddExercise", mock.Anything, "missing", entity.ExerciseInput{Description: "run", Duration: "30"}).
			Once().
			Return(nil, entity.ErrUserNotFound)

		suite.e.POST(path, "missing").
			WithFormField("description", "run").
			WithFormField("duration", "30").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			HasValue("error", "user not found")
	})

	suite.Run("invalid duration", func() {
		suite.trackerUseCaseMock.
			On("AddExercise", mock.Anything, "u1", entity.ExerciseInput{Description: "run", Duration: "abc"}).
			Once().
			Return(nil, entity.ErrInvalidDuration)

		suite.e.POST(path, "u1").
			WithFormField("description", "run").
			WithFormField("duration", "abc").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "duration must be a number")
	})

	suite.Run("success with form", func() {
		suite.trackerUseCaseMock.
			On("AddExercise", mock.Anything, "u1", entity.ExerciseInput{Description: "run", Duration: "30", Date: "2024-01-01"}).
			Once().
			Return(&entity.ExerciseEntry{
				User:     &entity.User{ID: "u1", Username: "alice"},
				Exercise: &entity.Exercise{ID: "e1", UserID: "u1", Description: "run", Duration: 30, Date: date},
			}, nil)

		suite.e.POST(path, "u1").
			WithFormField("description", "run").
			WithFormField("duration", "30").
			WithFormField("date", "2024-01-01").
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			IsEqual(map[string]any{
				"username":    "alice",
				"description": "run",
				"duration":    30,
				"date":        "Mon Jan 01 2024",
				"_id":         "u1",
			})
	})

	suite.Run("form with user id field", func() {
		suite.trackerUseCaseMock.
			On("AddExercise", mock.Anything, "u1", entity.ExerciseInput{Description: "run", Duration: "30"}).
			Once().
			Return(&entity.ExerciseEntry{
				User:     &entity.User{ID: "u1", Username: "alice"},
				Exercise: &entity.Exercise{ID: "e3", UserID: "u1", Description: "run", Duration: 30, Date: date},
			}, nil)

		suite.e.POST(path, "u1").
			WithFormField(":_id", "u1").
			WithFormField("description", "run").
			WithFormField("duration", "30").
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("description", "run")
	})

	suite.Run("success with json", func() {
		suite.trackerUseCaseMock.
			On("AddExercise", mock.Anything, "u1", entity.ExerciseInput{Description: "swim", Duration: "45"}).
			Once().
			Return(&entity.ExerciseEntry{
				User:     &entity.User{ID: "u1", Username: "alice"},
				Exercise: &entity.Exercise{ID: "e2", UserID: "u1", Description: "swim", Duration: 45, Date: date},
			}, nil)

		suite.e.POST(path, "u1").
			WithJSON(map[string]any{"description": "swim", "duration": 45}).
			Expect().
			Status(http.StatusCreated).
			JSON().Object().
			HasValue("duration", 45)
	})
}

func (suite *HandlersTestSuite) TestQueryLog() {
	const path = "/api/users/{userID}/logs"

	suite.Run("user not found", func() {
		suite.trackerUseCaseMock.
			On("QueryLog", mock.Anything, "missing", entity.LogQuery{}).
			Once().
			Return(nil, entity.ErrUserNotFound)

		suite.e.GET(path, "missing").
			Expect().
			Status(http.StatusNotFound).
			JSON().Object().
			IsEqual(map[string]any{"error": "user not found"})
	})

	suite.Run("success", func() {
		suite.trackerUseCaseMock.
			On("QueryLog", mock.Anything, "u1", entity.LogQuery{From: "2024-01-01", To: "2024-12-31", Limit: "1"}).
			Once().
			Return(&entity.ExerciseLog{
				User:  &entity.User{ID: "u1", Username: "alice"},
				Count: 1,
				Log: []*entity.Exercise{
					{ID: "e1", UserID: "u1", Description: "run", Duration: 30, Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
				},
			}, nil)

		suite.e.GET(path, "u1").
			WithQuery("from", "2024-01-01").
			WithQuery("to", "2024-12-31").
			WithQuery("limit", "1").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			IsEqual(map[string]any{
				"username": "alice",
				"count":    1,
				"_id":      "u1",
				"log": []map[string]any{
					{"description": "run", "duration": 30, "date": "Tue Mar 05 2024"},
				},
			})
	})

	suite.Run("empty log", func() {
		suite.trackerUseCaseMock.
			On("QueryLog", mock.Anything, "u1", entity.LogQuery{}).
			Once().
			Return(&entity.ExerciseLog{User: &entity.User{ID: "u1", Username: "alice"}}, nil)

		suite.e.GET(path, "u1").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			HasValue("count", 0).
			Value("log").Array().IsEmpty()
	})
}

func (suite *HandlersTestSuite) TestFileAnalyse() {
	const path = "/api/fileanalyse"

	suite.Run("missing file", func() {
		suite.e.POST(path).
			WithMultipart().
			WithFormField("other", "value").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "file is required")
	})

	suite.Run("not multipart", func() {
		suite.e.POST(path).
			WithFormField("upfile", "value").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			HasValue("error", "file is required")
	})

	suite.Run("file too large", func() {
		suite.e.POST(path).
			WithMultipart().
			WithFile("upfile", "big.bin", bytes.NewReader(make([]byte, 4<<10))).
			Expect().
			StatusRange(httpexpect.Status4xx)
	})

	suite.Run("success", func() {
		suite.fileUseCaseMock.
			On("Analyse", mock.Anything, "notes.txt", "application/octet-stream", int64(5), mock.Anything).
			Once().
			Return(&entity.FileMetadata{Name: "notes.txt", Type: "text/plain; charset=utf-8", Size: 5}, nil)

		suite.e.POST(path).
			WithMultipart().
			WithFile("upfile", "notes.txt", strings.NewReader("hello")).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			IsEqual(map[string]any{"name": "notes.txt", "type": "text/plain; charset=utf-8", "size": 5})
	})
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
