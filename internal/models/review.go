package models

// ReviewRecord tracks one word's position on the Leitner ladder for one user.
// Dates are calendar days in ISO form (YYYY-MM-DD); review scheduling has
// day granularity, not timestamps.
type ReviewRecord struct {
	WordID       int    `json:"wordId"`
	Box          int    `json:"box"`
	LastReview   string `json:"lastReview"`
	NextReview   string `json:"nextReview"`
	CorrectCount int    `json:"correctCount"`
	WrongCount   int    `json:"wrongCount"`
}

// LeitnerStats summarizes a user's review records.
type LeitnerStats struct {
	Boxes         map[int]int `json:"boxes"`
	TotalLearned  int         `json:"totalLearned"`
	TotalCorrect  int         `json:"totalCorrect"`
	TotalWrong    int         `json:"totalWrong"`
	MasteredCount int         `json:"masteredCount"`
}
