package leitner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/hyeon/vocaflash/internal/leitner"
	"github.com/hyeon/vocaflash/internal/models"
)

func TestApply_FirstCorrectAnswer(t *testing.T) {
	rec := leitner.NewRecord(42, "2024-01-01")
	updated := leitner.Apply(rec, true, "2024-01-01")

	assert.Equal(t, 2, updated.Box, "first correct answer promotes to box 2")
	assert.Equal(t, "2024-01-03", updated.NextReview, "box 2 reviews after 2 days")
	assert.Equal(t, "2024-01-01", updated.LastReview)
	assert.Equal(t, 1, updated.CorrectCount)
	assert.Equal(t, 0, updated.WrongCount)
}

func TestApply_WrongAnswerDemotesToBoxOne(t *testing.T) {
	rec := models.ReviewRecord{
		WordID: 7, Box: 4, LastReview: "2024-01-01", NextReview: "2024-01-08",
		CorrectCount: 3, WrongCount: 1,
	}
	updated := leitner.Apply(rec, false, "2024-01-05")

	assert.Equal(t, 1, updated.Box, "any wrong answer sends the word back to box 1")
	assert.Equal(t, "2024-01-05", updated.NextReview, "demoted words are due again the same day")
	assert.Equal(t, "2024-01-05", updated.LastReview)
	assert.Equal(t, 3, updated.CorrectCount, "correct count never decreases")
	assert.Equal(t, 2, updated.WrongCount)
}

func TestApply_CorrectCapsAtMaxBox(t *testing.T) {
	rec := models.ReviewRecord{WordID: 1, Box: 5, CorrectCount: 10}
	updated := leitner.Apply(rec, true, "2024-03-01")

	assert.Equal(t, 5, updated.Box, "box never exceeds 5")
	assert.Equal(t, "2024-03-15", updated.NextReview, "mastered words review every 14 days")
	assert.Equal(t, 11, updated.CorrectCount)
}

func TestApply_Intervals(t *testing.T) {
	// Promote one word from box 1 through box 5 and check each interval.
	expected := map[int]string{
		2: "2024-06-03", // +2
		3: "2024-06-05", // +4
		4: "2024-06-08", // +7
		5: "2024-06-15", // +14
	}
	rec := leitner.NewRecord(1, "2024-06-01")
	for box := 2; box <= 5; box++ {
		rec = leitner.Apply(rec, true, "2024-06-01")
		assert.Equal(t, box, rec.Box)
		assert.Equal(t, expected[box], rec.NextReview, "interval for box %d", box)
	}
}

func TestInterval_UnknownBoxIsZero(t *testing.T) {
	assert.Equal(t, 0, leitner.Interval(0))
	assert.Equal(t, 0, leitner.Interval(6))
}

func words(ids ...int) []models.Word {
	out := make([]models.Word, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Word{ID: id})
	}
	return out
}

func TestDueWords(t *testing.T) {
	records := map[int]models.ReviewRecord{
		1: {WordID: 1, Box: 2, NextReview: "2024-01-10"}, // overdue
		2: {WordID: 2, Box: 3, NextReview: "2024-01-15"}, // due today
		3: {WordID: 3, Box: 2, NextReview: "2024-01-20"}, // future
	}

	due := leitner.DueWords(records, words(1, 2, 3, 4), "2024-01-15")

	ids := make([]int, 0, len(due))
	for _, w := range due {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []int{1, 2, 4}, ids, "overdue, due-today and never-studied words are due")
}

func TestWordsByBox(t *testing.T) {
	records := map[int]models.ReviewRecord{
		1: {WordID: 1, Box: 2},
		2: {WordID: 2, Box: 2},
		3: {WordID: 3, Box: 5},
	}

	inBox := leitner.WordsByBox(records, words(1, 2, 3, 4), 2)
	assert.Len(t, inBox, 2)
}

func TestWrongWords_ExcludesMastered(t *testing.T) {
	records := map[int]models.ReviewRecord{
		1: {WordID: 1, Box: 2, WrongCount: 1},
		2: {WordID: 2, Box: 5, WrongCount: 3}, // mastered despite misses
		3: {WordID: 3, Box: 3, WrongCount: 0},
	}

	wrong := leitner.WrongWords(records, words(1, 2, 3))
	assert.Len(t, wrong, 1)
	assert.Equal(t, 1, wrong[0].ID)
}

func TestStats(t *testing.T) {
	records := map[int]models.ReviewRecord{
		1: {WordID: 1, Box: 1, CorrectCount: 0, WrongCount: 2},
		2: {WordID: 2, Box: 3, CorrectCount: 4, WrongCount: 1},
		3: {WordID: 3, Box: 5, CorrectCount: 9, WrongCount: 0},
		4: {WordID: 4, Box: 5, CorrectCount: 7, WrongCount: 2},
	}

	stats := leitner.Stats(records)

	assert.Equal(t, 4, stats.TotalLearned)
	assert.Equal(t, 20, stats.TotalCorrect)
	assert.Equal(t, 5, stats.TotalWrong)
	assert.Equal(t, 2, stats.MasteredCount)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 1, 4: 0, 5: 2}, stats.Boxes)
}

func TestStats_Empty(t *testing.T) {
	stats := leitner.Stats(nil)
	assert.Equal(t, 0, stats.TotalLearned)
	assert.Equal(t, 0, stats.MasteredCount)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Boxes)
}
