package models

// Word is one entry of the read-only vocabulary catalog.
// Level is the content difficulty tier (1-5), not the learner's level.
type Word struct {
	ID        int    `json:"id"`
	English   string `json:"english"`
	Korean    string `json:"korean"`
	Emoji     string `json:"emoji"`
	Example   string `json:"example"`
	ExampleKo string `json:"exampleKo"`
	Level     int    `json:"level"`
	Category  string `json:"category"`
}
