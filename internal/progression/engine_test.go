package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/hyeon/vocaflash/internal/models"
	"github.com/hyeon/vocaflash/internal/progression"
)

func TestApplyAnswer_FirstEverAnswer(t *testing.T) {
	p := progression.Default()
	res := progression.ApplyAnswer(&p, true, "2024-01-01")

	assert.Equal(t, 10, res.XPGained)
	assert.False(t, res.LeveledUp)
	assert.False(t, res.StreakReset, "a fresh profile has no streak to reset")
	assert.Equal(t, 10, p.XP)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	assert.Equal(t, 1, p.TotalWordsLearned)
	assert.Equal(t, 1, p.TodayWordsStudied)
	assert.Equal(t, "2024-01-01", p.LastStudyDate)
}

func TestApplyAnswer_WrongAnswerStillEarnsXP(t *testing.T) {
	p := progression.Default()
	res := progression.ApplyAnswer(&p, false, "2024-01-01")

	assert.Equal(t, 2, res.XPGained)
	assert.Equal(t, 2, p.XP)
	assert.Equal(t, 0, p.TotalWordsLearned, "wrong answers do not count as learned")
	assert.Equal(t, 0, p.TodayWordsStudied)
	assert.Equal(t, "2024-01-01", p.LastStudyDate, "study date advances regardless")
}

func TestApplyAnswer_StreakContinuesNextDay(t *testing.T) {
	p := progression.Default()
	p.CurrentStreak = 3
	p.LongestStreak = 5
	p.LastStudyDate = "2024-01-04"
	p.TodayWordsStudied = 12

	res := progression.ApplyAnswer(&p, true, "2024-01-05")

	assert.False(t, res.StreakReset)
	assert.Equal(t, 4, p.CurrentStreak)
	assert.Equal(t, 5, p.LongestStreak)
	assert.Equal(t, 1, p.TodayWordsStudied, "daily counter resets on a new day")
}

func TestApplyAnswer_StreakResetsAfterGap(t *testing.T) {
	p := progression.Default()
	p.CurrentStreak = 7
	p.LongestStreak = 7
	p.LastStudyDate = "2024-01-01"

	res := progression.ApplyAnswer(&p, true, "2024-01-05")

	assert.True(t, res.StreakReset)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 7, p.LongestStreak, "longest streak survives the reset")
}

func TestApplyAnswer_SameDayDoesNotTouchStreak(t *testing.T) {
	p := progression.Default()
	p.CurrentStreak = 2
	p.LastStudyDate = "2024-01-05"
	p.TodayWordsStudied = 4

	res := progression.ApplyAnswer(&p, true, "2024-01-05")

	assert.False(t, res.StreakReset)
	assert.Equal(t, 2, p.CurrentStreak)
	assert.Equal(t, 5, p.TodayWordsStudied)
}

func TestApplyAnswer_LevelUpAtHundredXP(t *testing.T) {
	p := progression.Default()
	p.XP = 95
	p.LastStudyDate = "2024-02-01"

	res := progression.ApplyAnswer(&p, true, "2024-02-01")

	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 105, p.XP)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, []int{1, 2}, p.UnlockedLevels, "reaching level 2 unlocks content level 2")
}

func TestApplyAnswer_UnlocksCapAtContentLevelFive(t *testing.T) {
	p := progression.Default()
	p.XP = 995 // level 10 after this answer
	p.LastStudyDate = "2024-02-01"

	progression.ApplyAnswer(&p, true, "2024-02-01")

	assert.Equal(t, 11, p.Level)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.UnlockedLevels)
}

func TestApplyAnswer_UnlocksNeverRevoked(t *testing.T) {
	// A synced-down state may hold unlocks above the XP level; they stay.
	p := models.Progress{Level: 1, DailyGoal: 20, UnlockedLevels: []int{1, 4}}
	progression.ApplyAnswer(&p, false, "2024-02-01")

	assert.Equal(t, []int{1, 4}, p.UnlockedLevels)
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, progression.LevelForXP(0))
	assert.Equal(t, 1, progression.LevelForXP(99))
	assert.Equal(t, 2, progression.LevelForXP(100))
	assert.Equal(t, 5, progression.LevelForXP(430))
}

func TestDailyProgress(t *testing.T) {
	p := progression.Default()
	p.TodayWordsStudied = 5

	dp := progression.DailyProgress(p)
	assert.Equal(t, 5, dp.Current)
	assert.Equal(t, 20, dp.Goal)
	assert.InDelta(t, 25.0, dp.Percentage, 0.001)
	assert.False(t, dp.Completed)
}

func TestDailyProgress_CapsAtHundredPercent(t *testing.T) {
	p := progression.Default()
	p.DailyGoal = 10
	p.TodayWordsStudied = 25

	dp := progression.DailyProgress(p)
	assert.InDelta(t, 100.0, dp.Percentage, 0.001)
	assert.True(t, dp.Completed)
}

func TestXPProgress(t *testing.T) {
	p := progression.Default()
	p.XP = 230

	xp := progression.XPProgress(p)
	assert.Equal(t, 30, xp.Current)
	assert.Equal(t, 100, xp.Needed)
	assert.InDelta(t, 30.0, xp.Percentage, 0.001)
	assert.Equal(t, 230, xp.TotalXP)
}

func TestSetDailyGoal_RejectsNonPositive(t *testing.T) {
	p := progression.Default()

	assert.Error(t, progression.SetDailyGoal(&p, 0))
	assert.Error(t, progression.SetDailyGoal(&p, -3))
	assert.Equal(t, 20, p.DailyGoal, "rejected goals leave the value unchanged")

	assert.NoError(t, progression.SetDailyGoal(&p, 50))
	assert.Equal(t, 50, p.DailyGoal)
}

func TestReset(t *testing.T) {
	p := progression.Default()
	p.XP = 500
	p.CurrentStreak = 9
	p.UnlockedLevels = []int{1, 2, 3}

	progression.Reset(&p)
	assert.Equal(t, progression.Default(), p)
}
