package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/YelnurShh/infoqaz/api"
	"github.com/YelnurShh/infoqaz/config"
	"github.com/YelnurShh/infoqaz/domain"
	"github.com/YelnurShh/infoqaz/tests/helpers"
)

func submitQuiz(t *testing.T, handler *api.Handler, topicID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/quiz/"+topicID+"/submit", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/quiz/:topic_id/submit")
	c.SetParamNames("topic_id")
	c.SetParamValues(topicID)

	err := handler.SubmitQuiz(c)
	assert.NoError(t, err)
	return rec
}

func TestSubmitQuiz(t *testing.T) {
	store := helpers.NewTestSQLiteStore(t)
	handler := api.NewHandler(store, &config.Config{})
	ctx := context.Background()

	user := &domain.User{UserID: "usr_1", Email: "a@b.kz", Name: "A", CreatedAt: time.Now()}
	assert.NoError(t, store.CreateUser(ctx, user))

	t.Run("requires sign in", func(t *testing.T) {
		rec := submitQuiz(t, handler, "binary-representation", `{"answers":["2","8","13"]}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = submitQuiz(t, handler, "binary-representation", `{"user_id":"usr_ghost","answers":["2","8","13"]}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown topic", func(t *testing.T) {
		rec := submitQuiz(t, handler, "no-such-topic", `{"user_id":"usr_1","answers":[]}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("scores and credits points", func(t *testing.T) {
		rec := submitQuiz(t, handler, "binary-representation", `{"user_id":"usr_1","answers":["2","16","13"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp api.QuizSubmitResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, 2, resp.Score)
		assert.Equal(t, 3, resp.Total)
		assert.Equal(t, int64(20), resp.PointsEarned)
		assert.Equal(t, []bool{true, false, true}, resp.Results)

		got, err := store.GetUser(ctx, "usr_1")
		assert.NoError(t, err)
		assert.Equal(t, int64(20), got.Points)

		subs, err := store.ListSubmissions(ctx, "usr_1", 10)
		assert.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("resubmission accumulates points", func(t *testing.T) {
		// Dedup is a client-side guard only; the server happily scores again.
		rec := submitQuiz(t, handler, "binary-representation", `{"user_id":"usr_1","answers":["2","8","13"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		got, err := store.GetUser(ctx, "usr_1")
		assert.NoError(t, err)
		assert.Equal(t, int64(50), got.Points)
	})

	t.Run("zero score awards nothing", func(t *testing.T) {
		user2 := &domain.User{UserID: "usr_2", Email: "b@b.kz", Name: "B", CreatedAt: time.Now()}
		assert.NoError(t, store.CreateUser(ctx, user2))

		rec := submitQuiz(t, handler, "binary-representation", `{"user_id":"usr_2","answers":["8","2","11"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp api.QuizSubmitResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Score)
		assert.Equal(t, int64(0), resp.PointsEarned)

		got, err := store.GetUser(ctx, "usr_2")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), got.Points)
	})
}
