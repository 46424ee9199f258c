package api

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/YelnurShh/infoqaz/domain"
	"github.com/YelnurShh/infoqaz/quiz"
)

// QuizSubmitRequest is the request to score a quiz attempt. Answers are
// matched to questions by position.
type QuizSubmitRequest struct {
	UserID  string   `json:"user_id"`
	Answers []string `json:"answers"`
}

// QuizSubmitResponse is the scoring result.
type QuizSubmitResponse struct {
	OK           bool   `json:"ok"`
	Score        int    `json:"score"`
	Total        int    `json:"total"`
	PointsEarned int64  `json:"points_earned"`
	Results      []bool `json:"results"`
}

// SubmitQuiz scores a quiz attempt and credits the user's point total with a
// single atomic increment. There is no anonymous scoring path.
// POST /api/quiz/:topic_id/submit
func (h *Handler) SubmitQuiz(c echo.Context) error {
	ctx := c.Request().Context()
	topicID := c.Param("topic_id")

	var req QuizSubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if req.UserID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "sign in required"})
	}
	user, err := h.store.GetUser(ctx, req.UserID)
	if err != nil {
		log.Printf("ERROR: failed to get user: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to submit quiz"})
	}
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "sign in required"})
	}

	topic, err := h.store.GetTopic(ctx, topicID)
	if err != nil {
		log.Printf("ERROR: failed to get topic: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to submit quiz"})
	}
	if topic == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "topic not found"})
	}

	questions, err := h.store.GetQuizQuestions(ctx, topicID)
	if err != nil {
		log.Printf("ERROR: failed to get quiz questions: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to submit quiz"})
	}

	score, results := quiz.Score(questions, req.Answers)
	pointsEarned := int64(score) * quiz.PointsPerCorrect

	if pointsEarned > 0 {
		if err := h.store.AddPoints(ctx, user.UserID, pointsEarned); err != nil {
			log.Printf("ERROR: failed to add points for %s: %v", user.UserID, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save points"})
		}
	}

	submission := &domain.QuizSubmission{
		SubmissionID: "sub_" + uuid.New().String()[:8],
		UserID:       user.UserID,
		TopicID:      topicID,
		Score:        score,
		Total:        len(questions),
		PointsEarned: pointsEarned,
		CreatedAt:    time.Now(),
	}
	if err := h.store.CreateSubmission(ctx, submission); err != nil {
		// Points are already credited; the missing history row is only a log concern.
		log.Printf("WARN: failed to record submission for %s: %v", user.UserID, err)
	}

	return c.JSON(http.StatusOK, QuizSubmitResponse{
		OK:           true,
		Score:        score,
		Total:        len(questions),
		PointsEarned: pointsEarned,
		Results:      results,
	})
}
