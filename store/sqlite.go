package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YelnurShh/infoqaz/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store, running migrations and seeding
// the course topics.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := store.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS topics (
			topic_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			video_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_questions (
			question_id TEXT PRIMARY KEY,
			topic_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			options TEXT NOT NULL,
			answer TEXT NOT NULL,
			FOREIGN KEY (topic_id) REFERENCES topics(topic_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_topic ON quiz_questions(topic_id, position)`,
		`CREATE TABLE IF NOT EXISTS quiz_submissions (
			submission_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			topic_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			points_earned INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(user_id),
			FOREIGN KEY (topic_id) REFERENCES topics(topic_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_user ON quiz_submissions(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

type seedQuestion struct {
	prompt  string
	options []string
	answer  string
}

type seedTopic struct {
	id          string
	title       string
	description string
	videoURL    string
	questions   []seedQuestion
}

// seedTopics is the built-in Kazakh computer-science course content.
var seedTopics = []seedTopic{
	{
		id:          "computer-history",
		title:       "Компьютердің даму тарихы",
		description: "Есептеу техникасының пайда болуы мен даму кезеңдері.",
		videoURL:    "https://www.youtube.com/embed/O5nskjZ_GoI",
		questions: []seedQuestion{
			{
				prompt:  "Алғашқы электронды компьютер қалай аталды?",
				options: []string{"ENIAC", "IBM PC", "Macintosh"},
				answer:  "ENIAC",
			},
			{
				prompt:  "Транзисторлар компьютердің қай буынында қолданылды?",
				options: []string{"Бірінші", "Екінші", "Төртінші"},
				answer:  "Екінші",
			},
		},
	},
	{
		id:          "binary-representation",
		title:       "Екілік ақпаратты ұсыну",
		description: "Сандар мен мәтінді екілік жүйеде кодтау негіздері.",
		videoURL:    "https://www.youtube.com/embed/LpuPe81bc2w",
		questions: []seedQuestion{
			{
				prompt:  "Екілік жүйеде қанша цифр қолданылады?",
				options: []string{"2", "8", "10"},
				answer:  "2",
			},
			{
				prompt:  "Бір байтта қанша бит бар?",
				options: []string{"4", "8", "16"},
				answer:  "8",
			},
			{
				prompt:  "1101 екілік саны ондық жүйеде нешеге тең?",
				options: []string{"11", "13", "15"},
				answer:  "13",
			},
		},
	},
	{
		id:          "internet",
		title:       "Интернеттің пайда болуы",
		description: "ARPANET-тен бүгінгі ғаламторға дейінгі жол.",
		videoURL:    "https://www.youtube.com/embed/9hIQjrMHTv4",
		questions: []seedQuestion{
			{
				prompt:  "Интернеттің алдыңғы желісі қалай аталды?",
				options: []string{"ARPANET", "Ethernet", "Intranet"},
				answer:  "ARPANET",
			},
			{
				prompt:  "Веб-беттер қай протокол арқылы жеткізіледі?",
				options: []string{"FTP", "HTTP", "SMTP"},
				answer:  "HTTP",
			},
		},
	},
	{
		id:          "cybersecurity",
		title:       "Киберқауіпсіздік",
		description: "Жеке деректерді қорғау және қауіпсіз жұмыс ережелері.",
		questions: []seedQuestion{
			{
				prompt:  "Құпия сөзді қаншалықты жиі бөліскен дұрыс?",
				options: []string{"Ешқашан", "Досқа ғана", "Сұрағанда"},
				answer:  "Ешқашан",
			},
			{
				prompt:  "Фишинг дегеніміз не?",
				options: []string{"Вирус түрі", "Деректерді алдап алу", "Желі протоколы"},
				answer:  "Деректерді алдап алу",
			},
		},
	},
}

// seed inserts the built-in topics and their quiz questions. Existing rows are
// left untouched so redeploys do not duplicate content.
func (s *SQLiteStore) seed() error {
	for _, t := range seedTopics {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO topics (topic_id, title, description, video_url) VALUES (?, ?, ?, ?)`,
			t.id, t.title, t.description, t.videoURL)
		if err != nil {
			return fmt.Errorf("failed to seed topic %s: %w", t.id, err)
		}

		for i, q := range t.questions {
			options, err := json.Marshal(q.options)
			if err != nil {
				return fmt.Errorf("failed to marshal options: %w", err)
			}
			questionID := fmt.Sprintf("%s-q%d", t.id, i+1)
			_, err = s.db.Exec(
				`INSERT OR IGNORE INTO quiz_questions (question_id, topic_id, position, prompt, options, answer) VALUES (?, ?, ?, ?, ?, ?)`,
				questionID, t.id, i+1, q.prompt, string(options), q.answer)
			if err != nil {
				return fmt.Errorf("failed to seed question %s: %w", questionID, err)
			}
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser creates a new user profile.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, email, name, points, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.UserID, user.Email, user.Name, user.Points, user.CreatedAt)
	return err
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, points, created_at FROM users WHERE user_id = ?`,
		userID).Scan(&user.UserID, &user.Email, &user.Name, &user.Points, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, points, created_at FROM users WHERE email = ?`,
		email).Scan(&user.UserID, &user.Email, &user.Name, &user.Points, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddPoints increments a user's point total in a single atomic update.
func (s *SQLiteStore) AddPoints(ctx context.Context, userID string, points int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET points = points + ? WHERE user_id = ?`,
		points, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// ListTopics lists all topics.
func (s *SQLiteStore) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT topic_id, title, description, COALESCE(video_url, '') FROM topics ORDER BY topic_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.TopicID, &t.Title, &t.Description, &t.VideoURL); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// GetTopic retrieves a topic by ID.
func (s *SQLiteStore) GetTopic(ctx context.Context, topicID string) (*domain.Topic, error) {
	var t domain.Topic
	err := s.db.QueryRowContext(ctx,
		`SELECT topic_id, title, description, COALESCE(video_url, '') FROM topics WHERE topic_id = ?`,
		topicID).Scan(&t.TopicID, &t.Title, &t.Description, &t.VideoURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetQuizQuestions retrieves a topic's questions ordered by position.
func (s *SQLiteStore) GetQuizQuestions(ctx context.Context, topicID string) ([]domain.QuizQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, topic_id, position, prompt, options, answer FROM quiz_questions WHERE topic_id = ? ORDER BY position`,
		topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.QuizQuestion
	for rows.Next() {
		var q domain.QuizQuestion
		var options string
		if err := rows.Scan(&q.QuestionID, &q.TopicID, &q.Position, &q.Prompt, &options, &q.Answer); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options for %s: %w", q.QuestionID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CreateSubmission records a scored quiz attempt.
func (s *SQLiteStore) CreateSubmission(ctx context.Context, submission *domain.QuizSubmission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_submissions (submission_id, user_id, topic_id, score, total, points_earned, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		submission.SubmissionID, submission.UserID, submission.TopicID,
		submission.Score, submission.Total, submission.PointsEarned, submission.CreatedAt)
	return err
}

// ListSubmissions lists a user's submissions, newest first.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, userID string, limit int) ([]domain.QuizSubmission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT submission_id, user_id, topic_id, score, total, points_earned, created_at
		 FROM quiz_submissions WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []domain.QuizSubmission
	for rows.Next() {
		var sub domain.QuizSubmission
		if err := rows.Scan(&sub.SubmissionID, &sub.UserID, &sub.TopicID,
			&sub.Score, &sub.Total, &sub.PointsEarned, &sub.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, sub)
	}
	return submissions, rows.Err()
}
