// Package leitner implements the 5-box spaced-repetition ladder.
// All functions are pure; persistence belongs to the caller.
package leitner

import (
	"github.com/hyeon/vocaflash/internal/dates"
	"github.com/hyeon/vocaflash/internal/models"
)

// MaxBox is the top of the ladder; words there are considered mastered.
const MaxBox = 5

// boxIntervals maps a box to the days until the next review.
// Box 1 is due immediately.
var boxIntervals = map[int]int{1: 0, 2: 2, 3: 4, 4: 7, 5: 14}

// Interval returns the review interval in days for a box. Boxes outside
// 1..5 fall back to 0, matching the permissive lookup of the ladder.
func Interval(box int) int {
	return boxIntervals[box]
}

// NewRecord seeds the review state for a word answered for the first time.
func NewRecord(wordID int, today string) models.ReviewRecord {
	return models.ReviewRecord{
		WordID:     wordID,
		Box:        1,
		LastReview: today,
		NextReview: today,
	}
}

// Apply advances a record by one answer. A correct answer promotes the word
// one box (capped at MaxBox); any wrong answer demotes it to box 1 and makes
// it due again today. Counters only ever grow.
func Apply(rec models.ReviewRecord, correct bool, today string) models.ReviewRecord {
	if correct {
		rec.Box = min(rec.Box+1, MaxBox)
		rec.CorrectCount++
		rec.NextReview = dates.AddDays(today, Interval(rec.Box))
	} else {
		rec.Box = 1
		rec.WrongCount++
		rec.NextReview = today
	}
	rec.LastReview = today
	return rec
}

// DueWords filters the catalog down to words due for review today.
// A word with no record has never been studied and is always due.
func DueWords(records map[int]models.ReviewRecord, words []models.Word, today string) []models.Word {
	var due []models.Word
	for _, w := range words {
		rec, ok := records[w.ID]
		if !ok || rec.NextReview <= today {
			due = append(due, w)
		}
	}
	return due
}

// WordsByBox returns the catalog words currently sitting in the given box.
func WordsByBox(records map[int]models.ReviewRecord, words []models.Word, box int) []models.Word {
	var out []models.Word
	for _, w := range words {
		if rec, ok := records[w.ID]; ok && rec.Box == box {
			out = append(out, w)
		}
	}
	return out
}

// WrongWords returns words that were ever missed and are not yet mastered.
func WrongWords(records map[int]models.ReviewRecord, words []models.Word) []models.Word {
	var out []models.Word
	for _, w := range words {
		if rec, ok := records[w.ID]; ok && rec.WrongCount > 0 && rec.Box < MaxBox {
			out = append(out, w)
		}
	}
	return out
}

// Stats aggregates a user's review records into box counts and totals.
func Stats(records map[int]models.ReviewRecord) models.LeitnerStats {
	stats := models.LeitnerStats{Boxes: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	for _, rec := range records {
		stats.Boxes[rec.Box]++
		stats.TotalCorrect += rec.CorrectCount
		stats.TotalWrong += rec.WrongCount
	}
	stats.TotalLearned = len(records)
	stats.MasteredCount = stats.Boxes[MaxBox]
	return stats
}
