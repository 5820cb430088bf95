package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ai-learning-service/internal/domain"
)

// LevelRepository abstracts how level documents are stored (in-memory, Postgres, Redis-cached).
type LevelRepository interface {
	FindByID(ctx context.Context, id string) (domain.Level, error)
	FindByNumber(ctx context.Context, levelNumber int) (domain.Level, error)
	ListOrdered(ctx context.Context) ([]domain.Level, error)
	Save(ctx context.Context, level domain.Level) error
	InsertMany(ctx context.Context, levels []domain.Level) error
}

// UserRepository abstracts account storage.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) error
	Save(ctx context.Context, user domain.User) error
}

// Points credited per question of the best score on a passing attempt.
const pointsPerQuestion = 10

// ProgressionService owns quiz submission and level progression.
type ProgressionService struct {
	levels LevelRepository
	users  UserRepository
	board  *StandingsBoard

	// userLocks serializes submissions per user so the read-modify-write
	// on bestScore/totalPoints cannot lose updates within this process.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewProgressionService(levels LevelRepository, users UserRepository, board *StandingsBoard) *ProgressionService {
	return &ProgressionService{
		levels:    levels,
		users:     users,
		board:     board,
		userLocks: make(map[string]*sync.Mutex),
	}
}

func (s *ProgressionService) lockUser(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// ListLevels returns all levels ordered by level number.
func (s *ProgressionService) ListLevels(ctx context.Context) ([]domain.Level, error) {
	return s.levels.ListOrdered(ctx)
}

// GetLevel returns one level by ID.
func (s *ProgressionService) GetLevel(ctx context.Context, levelID string) (domain.Level, error) {
	return s.levels.FindByID(ctx, levelID)
}

// GetUser returns one user by ID.
func (s *ProgressionService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// GetQuiz returns a level's questions with the correct indices withheld.
func (s *ProgressionService) GetQuiz(ctx context.Context, levelID string) ([]domain.QuizQuestionView, int, error) {
	level, err := s.levels.FindByID(ctx, levelID)
	if err != nil {
		return nil, 0, err
	}
	views := make([]domain.QuizQuestionView, 0, len(level.Questions))
	for i, q := range level.Questions {
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("%d", i)
		}
		views = append(views, domain.QuizQuestionView{
			ID:       id,
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return views, len(views), nil
}

// SubmitQuiz scores an answer set against a level's quiz, updates the
// user's best score and point total, and advances the unlock frontier
// on a passing attempt.
//
// Points are delta-based: only the improvement of the best score over
// what was previously credited is awarded, so retries at the same or a
// worse score are a no-op on totalPoints.
func (s *ProgressionService) SubmitQuiz(ctx context.Context, levelID, userID string, answers []int) (domain.SubmitResult, error) {
	level, err := s.levels.FindByID(ctx, levelID)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	total := len(level.Questions)
	if answers == nil || len(answers) != total {
		return domain.SubmitResult{}, domain.ErrInvalidAnswers
	}

	score := 0
	correctAnswers := make([]int, 0, total)
	for i, q := range level.Questions {
		if answers[i] == q.CorrectIndex {
			score++
		}
		correctAnswers = append(correctAnswers, q.CorrectIndex)
	}

	// 60% of the question count, rounded up.
	passThreshold := (total*3 + 4) / 5
	passed := score >= passThreshold

	lock := s.lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	existingBest, hadEntry := user.BestScoreFor(level.LevelNumber)
	existingBestPoints := 0
	if hadEntry {
		existingBestPoints = existingBest * pointsPerQuestion
	}

	// Best score is created with the first attempt and only ever raised.
	newBest := score
	if hadEntry && existingBest > newBest {
		newBest = existingBest
	}
	if hadEntry {
		for i := range user.LevelScores {
			if user.LevelScores[i].LevelNumber == level.LevelNumber {
				user.LevelScores[i].BestScore = newBest
			}
		}
	} else {
		user.LevelScores = append(user.LevelScores, domain.LevelScore{
			LevelNumber: level.LevelNumber,
			BestScore:   newBest,
		})
	}

	pointsAwarded := 0
	if passed {
		delta := newBest*pointsPerQuestion - existingBestPoints
		if delta > 0 {
			user.TotalPoints += delta
			pointsAwarded = delta
		}
		if !user.HasCompleted(level.LevelNumber) {
			user.CompletedLevels = append(user.CompletedLevels, level.LevelNumber)
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return domain.SubmitResult{}, fmt.Errorf("save user progress: %w", err)
	}

	unlockedNext := false
	if passed {
		if level.Status != domain.StatusCompleted {
			level.Status = domain.StatusCompleted
			if err := s.levels.Save(ctx, level); err != nil {
				return domain.SubmitResult{}, fmt.Errorf("save level status: %w", err)
			}
		}
		next, err := s.levels.FindByNumber(ctx, level.LevelNumber+1)
		switch {
		case err == nil:
			if next.Status == domain.StatusLocked {
				next.Status = domain.StatusUnlocked
				if err := s.levels.Save(ctx, next); err != nil {
					return domain.SubmitResult{}, fmt.Errorf("unlock next level: %w", err)
				}
			}
			unlockedNext = true
		case errors.Is(err, domain.ErrLevelNotFound):
			// Last level; nothing to unlock.
		default:
			return domain.SubmitResult{}, fmt.Errorf("look up next level: %w", err)
		}
	}

	if s.board != nil && pointsAwarded > 0 {
		s.board.Record(user.ID, user.Name, user.TotalPoints)
	}

	message := "Quiz submitted. Try again to unlock next level."
	if passed {
		message = "Passed! Next level unlocked."
	}

	return domain.SubmitResult{
		Score:          score,
		Total:          total,
		Passed:         passed,
		CorrectAnswers: correctAnswers,
		PointsAwarded:  pointsAwarded,
		UnlockedNext:   unlockedNext,
		BestScore:      newBest,
		BestPoints:     newBest * pointsPerQuestion,
		Message:        message,
	}, nil
}

// Progress is the compact view served at /api/user/progress.
type Progress struct {
	TotalPoints     int   `json:"totalPoints"`
	CompletedLevels []int `json:"completedLevels"`
}

// GetProgress returns a user's points and completed level numbers.
func (s *ProgressionService) GetProgress(ctx context.Context, userID string) (Progress, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return Progress{}, err
	}
	completed := user.CompletedLevels
	if completed == nil {
		completed = []int{}
	}
	return Progress{TotalPoints: user.TotalPoints, CompletedLevels: completed}, nil
}
