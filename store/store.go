// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/YelnurShh/infoqaz/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	AddPoints(ctx context.Context, userID string, points int64) error

	// Topic operations
	ListTopics(ctx context.Context) ([]domain.Topic, error)
	GetTopic(ctx context.Context, topicID string) (*domain.Topic, error)
	GetQuizQuestions(ctx context.Context, topicID string) ([]domain.QuizQuestion, error)

	// Submission operations
	CreateSubmission(ctx context.Context, submission *domain.QuizSubmission) error
	ListSubmissions(ctx context.Context, userID string, limit int) ([]domain.QuizSubmission, error)

	// Lifecycle
	Close() error
}
