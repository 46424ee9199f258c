package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListTopics lists the course topics.
// GET /api/topics
func (h *Handler) ListTopics(c echo.Context) error {
	ctx := c.Request().Context()

	topics, err := h.store.ListTopics(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list topics: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list topics"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":     true,
		"topics": topics,
	})
}

// GetTopic returns a topic with its quiz questions. Answer keys are excluded
// from the question payload.
// GET /api/topics/:topic_id
func (h *Handler) GetTopic(c echo.Context) error {
	ctx := c.Request().Context()
	topicID := c.Param("topic_id")

	topic, err := h.store.GetTopic(ctx, topicID)
	if err != nil {
		log.Printf("ERROR: failed to get topic: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get topic"})
	}
	if topic == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "topic not found"})
	}

	questions, err := h.store.GetQuizQuestions(ctx, topicID)
	if err != nil {
		log.Printf("ERROR: failed to get quiz questions: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get topic"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":        true,
		"topic":     topic,
		"questions": questions,
	})
}
