package models

// StudySession is an append-only audit entry for one study run.
// It feeds history displays only; the scheduler and progression engines
// never read it back.
type StudySession struct {
	Date         string `json:"date"`
	WordsStudied int    `json:"wordsStudied"`
	CorrectCount int    `json:"correctCount"`
	WrongCount   int    `json:"wrongCount"`
	Duration     int    `json:"duration"`
	Mode         string `json:"mode"`
}
