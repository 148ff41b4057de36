// Package progression owns the aggregate learner state: XP, level, streaks,
// level unlocks and the daily goal. Like the scheduler it is pure; the caller
// persists the mutated Progress value.
package progression

import (
	"github.com/hyeon/vocaflash/internal/apperr"
	"github.com/hyeon/vocaflash/internal/dates"
	"github.com/hyeon/vocaflash/internal/models"
)

const (
	XPPerLevel       = 100
	XPPerCorrect     = 10
	XPPerWrong       = 2
	DefaultDailyGoal = 20
	MaxContentLevel  = 5
)

// Default returns the progress state a freshly created profile starts with.
func Default() models.Progress {
	return models.Progress{
		Level:          1,
		DailyGoal:      DefaultDailyGoal,
		UnlockedLevels: []int{1},
	}
}

// LevelForXP is the one place the XP-to-level banding lives.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// AnswerResult reports what a single answer changed.
type AnswerResult struct {
	XPGained    int
	NewLevel    int
	LeveledUp   bool
	StreakReset bool
}

// ApplyAnswer folds one answer into the progress state: streak first
// (once per calendar day), then XP and level, then level unlocks, then the
// learned-word counters. LastStudyDate always advances to today.
func ApplyAnswer(p *models.Progress, correct bool, today string) AnswerResult {
	var res AnswerResult

	if p.LastStudyDate != today {
		switch p.LastStudyDate {
		case dates.Yesterday(today):
			p.CurrentStreak++
		default:
			// Gap of more than a day, or first-ever study.
			res.StreakReset = p.CurrentStreak > 1
			p.CurrentStreak = 1
		}
		p.TodayWordsStudied = 0
	}
	p.LongestStreak = max(p.LongestStreak, p.CurrentStreak)

	if correct {
		res.XPGained = XPPerCorrect
	} else {
		res.XPGained = XPPerWrong
	}
	oldLevel := LevelForXP(p.XP)
	p.XP += res.XPGained
	p.Level = LevelForXP(p.XP)
	res.NewLevel = p.Level
	res.LeveledUp = p.Level > oldLevel

	unlockLevels(p)

	if correct {
		p.TotalWordsLearned++
		p.TodayWordsStudied++
	}
	p.LastStudyDate = today
	return res
}

// unlockLevels ensures every content level up to min(level, 5) is unlocked.
// The slice stays sorted and deduplicated, and always contains 1.
func unlockLevels(p *models.Progress) {
	have := make(map[int]bool, len(p.UnlockedLevels))
	for _, l := range p.UnlockedLevels {
		have[l] = true
	}
	top := min(p.Level, MaxContentLevel)
	unlocked := make([]int, 0, top)
	for i := 1; i <= MaxContentLevel; i++ {
		if i == 1 || i <= top || have[i] {
			unlocked = append(unlocked, i)
		}
	}
	p.UnlockedLevels = unlocked
}

// DailyProgress derives today's study count against the daily goal.
func DailyProgress(p models.Progress) models.DailyProgress {
	goal := p.DailyGoal
	if goal < 1 {
		goal = DefaultDailyGoal
	}
	pct := float64(p.TodayWordsStudied) / float64(goal) * 100
	if pct > 100 {
		pct = 100
	}
	return models.DailyProgress{
		Current:    p.TodayWordsStudied,
		Goal:       goal,
		Percentage: pct,
		Completed:  p.TodayWordsStudied >= goal,
	}
}

// XPProgress derives the XP position within the current level band.
func XPProgress(p models.Progress) models.XPProgress {
	level := LevelForXP(p.XP)
	inLevel := p.XP - (level-1)*XPPerLevel
	return models.XPProgress{
		Current:    inLevel,
		Needed:     XPPerLevel,
		Percentage: float64(inLevel) / float64(XPPerLevel) * 100,
		TotalXP:    p.XP,
	}
}

// SetDailyGoal updates the goal. Goals below 1 are rejected: a zero goal
// would make the daily percentage degenerate.
func SetDailyGoal(p *models.Progress, goal int) error {
	if goal < 1 {
		return apperr.NewValidationError("dailyGoal", "must be a positive integer")
	}
	p.DailyGoal = goal
	return nil
}

// Reset restores the creation defaults.
func Reset(p *models.Progress) {
	*p = Default()
}
