package domain

import "time"

// LevelStatus tracks where a level sits on the unlock frontier.
type LevelStatus string

const (
	StatusLocked    LevelStatus = "locked"
	StatusUnlocked  LevelStatus = "unlocked"
	StatusCompleted LevelStatus = "completed"
)

// QuizQuestion is a single MCQ with the index of the correct option.
type QuizQuestion struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Level is an ordered unit of learning content with an embedded quiz.
// LevelNumber is unique and defines the progression order; the engine
// only ever looks at LevelNumber+1 to advance the frontier.
type Level struct {
	ID              string         `json:"id"`
	LevelNumber     int            `json:"levelNumber"`
	Title           string         `json:"title"`
	Intro           string         `json:"intro"`
	Content         string         `json:"content"`
	LongDescription string         `json:"longDescription,omitempty"`
	Examples        []string       `json:"examples,omitempty"`
	Status          LevelStatus    `json:"status"`
	Questions       []QuizQuestion `json:"quizQuestions"`
	CreatedAt       time.Time      `json:"createdAt,omitempty"`
	UpdatedAt       time.Time      `json:"updatedAt,omitempty"`
}

// LevelScore records a user's best quiz score for one level.
type LevelScore struct {
	LevelNumber int `json:"levelNumber"`
	BestScore   int `json:"bestScore"`
}

// User carries identity plus cumulative progress. CompletedLevels and
// LevelScores reference levels by LevelNumber, not by ID; the reference
// is soft and never validated.
type User struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	PasswordHash    string       `json:"-"`
	TotalPoints     int          `json:"totalPoints"`
	CompletedLevels []int        `json:"completedLevels"`
	LevelScores     []LevelScore `json:"levelScores"`
	CreatedAt       time.Time    `json:"createdAt,omitempty"`
}

// BestScoreFor returns the stored best score for a level, if any.
func (u *User) BestScoreFor(levelNumber int) (int, bool) {
	for _, s := range u.LevelScores {
		if s.LevelNumber == levelNumber {
			return s.BestScore, true
		}
	}
	return 0, false
}

// HasCompleted reports whether the level number is in CompletedLevels.
func (u *User) HasCompleted(levelNumber int) bool {
	for _, n := range u.CompletedLevels {
		if n == levelNumber {
			return true
		}
	}
	return false
}

// QuizQuestionView is a question with the correct index withheld,
// safe to hand to clients before submission.
type QuizQuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// SubmitResult summarizes one quiz submission for the caller.
type SubmitResult struct {
	Score          int    `json:"score"`
	Total          int    `json:"total"`
	Passed         bool   `json:"passed"`
	CorrectAnswers []int  `json:"correctAnswers"`
	PointsAwarded  int    `json:"pointsAwarded"`
	UnlockedNext   bool   `json:"unlockedNext"`
	BestScore      int    `json:"bestScore"`
	BestPoints     int    `json:"bestPoints"`
	Message        string `json:"message"`
}

// StandingsEntry is one row of the points leaderboard.
type StandingsEntry struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

// Standings is the ordered points leaderboard across all users.
type Standings struct {
	Entries   []StandingsEntry `json:"entries"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
