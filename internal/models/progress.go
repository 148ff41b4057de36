package models

// Progress is the per-user aggregate learner state. Level is always derived
// from XP; it is persisted only so the wire shape matches the client.
type Progress struct {
	TotalWordsLearned int    `json:"totalWordsLearned"`
	CurrentStreak     int    `json:"currentStreak"`
	LongestStreak     int    `json:"longestStreak"`
	LastStudyDate     string `json:"lastStudyDate"`
	XP                int    `json:"xp"`
	Level             int    `json:"level"`
	DailyGoal         int    `json:"dailyGoal"`
	TodayWordsStudied int    `json:"todayWordsStudied"`
	UnlockedLevels    []int  `json:"unlockedLevels"`
}

// ProgressPatch carries a partial progress update. Nil fields are left
// untouched; set fields overwrite, last write wins.
type ProgressPatch struct {
	TotalWordsLearned *int    `json:"totalWordsLearned"`
	CurrentStreak     *int    `json:"currentStreak"`
	LongestStreak     *int    `json:"longestStreak"`
	LastStudyDate     *string `json:"lastStudyDate"`
	XP                *int    `json:"xp"`
	Level             *int    `json:"level"`
	DailyGoal         *int    `json:"dailyGoal"`
	TodayWordsStudied *int    `json:"todayWordsStudied"`
	UnlockedLevels    []int   `json:"unlockedLevels"`
}

// DailyProgress is a derived view of today's study against the daily goal.
type DailyProgress struct {
	Current    int     `json:"current"`
	Goal       int     `json:"goal"`
	Percentage float64 `json:"percentage"`
	Completed  bool    `json:"completed"`
}

// XPProgress is a derived view of XP within the current level band.
type XPProgress struct {
	Current    int     `json:"current"`
	Needed     int     `json:"needed"`
	Percentage float64 `json:"percentage"`
	TotalXP    int     `json:"totalXP"`
}
