// Package domain defines the core data models for InfoQaz.
package domain

import "time"

// User is a registered learner profile.
type User struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// Topic is a course topic with an optional embedded video.
type Topic struct {
	TopicID     string `json:"topic_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url,omitempty"`
}

// QuizQuestion is a single multiple-choice question for a topic.
// The answer key is never serialized to clients.
type QuizQuestion struct {
	QuestionID string   `json:"question_id"`
	TopicID    string   `json:"topic_id"`
	Position   int      `json:"position"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	Answer     string   `json:"-"`
}

// QuizSubmission records one scored quiz attempt.
type QuizSubmission struct {
	SubmissionID string    `json:"submission_id"`
	UserID       string    `json:"user_id"`
	TopicID      string    `json:"topic_id"`
	Score        int       `json:"score"`
	Total        int       `json:"total"`
	PointsEarned int64     `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}
