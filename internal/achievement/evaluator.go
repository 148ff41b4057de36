// Package achievement holds the badge catalog and the one-shot unlock rules.
// The evaluator is stateless: it reads progression and scheduler state and
// reports which badges are newly earned; recording the unlock is the
// caller's job.
package achievement

import (
	"github.com/hyeon/vocaflash/internal/models"
)

// Catalog is the static badge list. Titles and descriptions are shown to
// Korean elementary students as-is.
var Catalog = []models.Achievement{
	{ID: "first_word", Title: "첫 걸음", Description: "첫 번째 단어를 학습했어요!", Emoji: "🎉"},
	{ID: "ten_words", Title: "열 단어 마스터", Description: "10개 단어를 학습했어요!", Emoji: "🌟"},
	{ID: "fifty_words", Title: "단어 수집가", Description: "50개 단어를 학습했어요!", Emoji: "📚"},
	{ID: "hundred_words", Title: "백 단어 달성", Description: "100개 단어를 학습했어요!", Emoji: "💯"},
	{ID: "streak_3", Title: "3일 연속", Description: "3일 연속 학습했어요!", Emoji: "🔥"},
	{ID: "streak_7", Title: "일주일 연속", Description: "7일 연속 학습했어요!", Emoji: "🏆"},
	{ID: "streak_30", Title: "한 달 연속", Description: "30일 연속 학습했어요!", Emoji: "👑"},
	{ID: "quiz_perfect", Title: "퀴즈 만점", Description: "퀴즈에서 만점을 받았어요!", Emoji: "🎯"},
	{ID: "level_2", Title: "레벨 2 달성", Description: "레벨 2를 해금했어요!", Emoji: "⭐"},
	{ID: "level_3", Title: "레벨 3 달성", Description: "레벨 3를 해금했어요!", Emoji: "⭐⭐"},
	{ID: "level_4", Title: "레벨 4 달성", Description: "레벨 4를 해금했어요!", Emoji: "⭐⭐⭐"},
	{ID: "level_5", Title: "레벨 5 달성", Description: "최고 레벨을 해금했어요!", Emoji: "🌈"},
	{ID: "box_5", Title: "완전 암기", Description: "첫 번째 단어를 Box 5에 올렸어요!", Emoji: "🧠"},
	{ID: "spelling_master", Title: "스펠링 마스터", Description: "받아쓰기 10개 연속 정답!", Emoji: "✍️"},
	{ID: "matching_fast", Title: "빠른 매칭", Description: "매칭 게임 30초 내 완료!", Emoji: "⚡"},
}

// ByID looks a badge up in the catalog.
func ByID(id string) (models.Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}

// Evaluate returns the badges whose conditions hold but are not yet in the
// unlocked set. Conditions are monotonic, so evaluation order is free and
// re-running after an unlock yields nothing new.
//
// quiz_perfect, spelling_master and matching_fast are caller-signaled and
// never derived here.
func Evaluate(p models.Progress, stats models.LeitnerStats, unlocked map[string]bool) []models.Achievement {
	has := func(level int) bool {
		for _, l := range p.UnlockedLevels {
			if l == level {
				return true
			}
		}
		return false
	}

	checks := []struct {
		id        string
		condition bool
	}{
		{"first_word", p.TotalWordsLearned >= 1},
		{"ten_words", p.TotalWordsLearned >= 10},
		{"fifty_words", p.TotalWordsLearned >= 50},
		{"hundred_words", p.TotalWordsLearned >= 100},
		{"streak_3", p.CurrentStreak >= 3},
		{"streak_7", p.CurrentStreak >= 7},
		{"streak_30", p.CurrentStreak >= 30},
		{"level_2", has(2)},
		{"level_3", has(3)},
		{"level_4", has(4)},
		{"level_5", has(5)},
		{"box_5", stats.MasteredCount >= 1},
	}

	var earned []models.Achievement
	for _, c := range checks {
		if !c.condition || unlocked[c.id] {
			continue
		}
		if a, ok := ByID(c.id); ok {
			earned = append(earned, a)
		}
	}
	return earned
}
