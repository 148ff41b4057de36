package models

// Achievement is a static catalog entry for a badge.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// UnlockedAchievement is one earned badge. At most one exists per
// (user, achievement) pair; UnlockedAt is set at first unlock and never changes.
type UnlockedAchievement struct {
	Achievement
	UnlockedAt string `json:"unlockedAt"`
}
