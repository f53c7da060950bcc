package controllers

import (
	"historium/backend/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultsWithScores(pairs ...[2]int) []models.TestResult {
	results := make([]models.TestResult, 0, len(pairs))
	for _, p := range pairs {
		results = append(results, models.TestResult{Score: p[0], Total: p[1]})
	}
	return results
}

func TestAverageFailRate(t *testing.T) {
	assert.Equal(t, 0.0, averageFailRate(nil))

	// все сдали на полный балл
	assert.InDelta(t, 0.0, averageFailRate(resultsWithScores([2]int{5, 5}, [2]int{5, 5})), 1e-9)

	// все провалили
	assert.InDelta(t, 1.0, averageFailRate(resultsWithScores([2]int{0, 5}, [2]int{0, 5})), 1e-9)

	// половина на половину
	assert.InDelta(t, 0.5, averageFailRate(resultsWithScores([2]int{5, 5}, [2]int{0, 5})), 1e-9)
}

func TestComputeDifficultyNeedsEnoughResults(t *testing.T) {
	results := resultsWithScores([2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1})

	// ровно 5 сдач — ещё рано
	assert.Equal(t, "", computeDifficulty(10, results))

	// шестая сдача включает рейтинг
	results = append(results, models.TestResult{Score: 1, Total: 1})
	difficulty := computeDifficulty(10, results)
	rating, ok := difficulty.(int)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, rating, 1)
	assert.LessOrEqual(t, rating, 5)
}

func TestComputeDifficultyClamped(t *testing.T) {
	perfect := resultsWithScores(
		[2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1},
		[2]int{1, 1}, [2]int{1, 1}, [2]int{1, 1},
	)
	// 1 вопрос, нулевой провал: round(0.2) = 0 поднимается до 1
	assert.Equal(t, 1, computeDifficulty(1, perfect))

	failed := resultsWithScores(
		[2]int{0, 1}, [2]int{0, 1}, [2]int{0, 1},
		[2]int{0, 1}, [2]int{0, 1}, [2]int{0, 1},
	)
	// 40 вопросов, полный провал: round(8 + 5) = 13 опускается до 5
	assert.Equal(t, 5, computeDifficulty(40, failed))

	// полный провал на одном вопросе: round(0.2 + 5) = 5
	assert.Equal(t, 5, computeDifficulty(1, failed))
}
