// Package quiz scores quiz submissions.
package quiz

import "github.com/YelnurShh/infoqaz/domain"

// PointsPerCorrect is the number of profile points awarded per correct answer.
const PointsPerCorrect = 10

// Score compares submitted answers to the answer keys. Returns the number of
// correct answers and per-question correctness in question order. A missing
// answer counts as incorrect.
func Score(questions []domain.QuizQuestion, answers []string) (int, []bool) {
	results := make([]bool, len(questions))
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.Answer {
			correct++
			results[i] = true
		}
	}
	return correct, results
}
