package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ai-learning-service/internal/app"
	"ai-learning-service/internal/domain"
	"ai-learning-service/internal/infra/memory"
)

func TestSubmitQuizScoresAndUnlocks(t *testing.T) {
	ctx := context.Background()
	service, _, users := newTestService(t)

	result, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 1, 1, 2, 1})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 5 || result.Total != 5 || !result.Passed {
		t.Fatalf("expected perfect pass, got %+v", result)
	}
	if result.PointsAwarded != 50 {
		t.Fatalf("expected 50 points, got %d", result.PointsAwarded)
	}
	if !result.UnlockedNext {
		t.Fatalf("expected next level unlocked")
	}
	if result.BestScore != 5 || result.BestPoints != 50 {
		t.Fatalf("expected best 5/50, got %d/%d", result.BestScore, result.BestPoints)
	}

	user, err := users.FindByID(ctx, "u1")
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.TotalPoints != 50 {
		t.Fatalf("expected 50 total points, got %d", user.TotalPoints)
	}
	if !user.HasCompleted(1) {
		t.Fatalf("expected level 1 completed")
	}

	level2, err := service.GetLevel(ctx, "level-2")
	if err != nil {
		t.Fatalf("load level 2: %v", err)
	}
	if level2.Status != domain.StatusUnlocked {
		t.Fatalf("expected level 2 unlocked, got %s", level2.Status)
	}
	level1, _ := service.GetLevel(ctx, "level-1")
	if level1.Status != domain.StatusCompleted {
		t.Fatalf("expected level 1 completed, got %s", level1.Status)
	}
}

func TestSubmitQuizRepeatWorseScoreAwardsNothing(t *testing.T) {
	ctx := context.Background()
	service, _, users := newTestService(t)

	if _, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 1, 1, 2, 1}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Score 4 still passes but is below the credited best of 5.
	result, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 0, 1, 2, 1})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if result.Score != 4 || !result.Passed {
		t.Fatalf("expected passing score 4, got %+v", result)
	}
	if result.PointsAwarded != 0 {
		t.Fatalf("expected 0 points on worse retry, got %d", result.PointsAwarded)
	}
	if result.BestScore != 5 {
		t.Fatalf("best score must not regress, got %d", result.BestScore)
	}

	user, _ := users.FindByID(ctx, "u1")
	if user.TotalPoints != 50 {
		t.Fatalf("total points must not change, got %d", user.TotalPoints)
	}
	if len(user.CompletedLevels) != 1 {
		t.Fatalf("completed levels must stay deduplicated, got %v", user.CompletedLevels)
	}
}

func TestSubmitQuizImprovementAwardsDeltaOnly(t *testing.T) {
	ctx := context.Background()
	service, _, users := newTestService(t)

	// First attempt: 3/5, passes (threshold ceil(3) = 3), credits 30.
	first, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 1, 1, 0, 0})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if first.Score != 3 || !first.Passed || first.PointsAwarded != 30 {
		t.Fatalf("expected 3/5 pass with 30 points, got %+v", first)
	}

	// Improvement to 5/5 awards only the marginal 20.
	second, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 1, 1, 2, 1})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.PointsAwarded != 20 {
		t.Fatalf("expected delta of 20 points, got %d", second.PointsAwarded)
	}

	user, _ := users.FindByID(ctx, "u1")
	if user.TotalPoints != 50 {
		t.Fatalf("expected 50 total, got %d", user.TotalPoints)
	}
}

func TestSubmitQuizFailingAttemptRecordsBestOnly(t *testing.T) {
	ctx := context.Background()
	service, _, users := newTestService(t)

	result, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{0, 0, 1, 0, 0})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Passed || result.Score != 1 {
		t.Fatalf("expected failing score 1, got %+v", result)
	}
	if result.PointsAwarded != 0 || result.UnlockedNext {
		t.Fatalf("failing attempt must not award or unlock, got %+v", result)
	}
	if result.BestScore != 1 {
		t.Fatalf("best score should record first attempt, got %d", result.BestScore)
	}

	user, _ := users.FindByID(ctx, "u1")
	if user.TotalPoints != 0 || len(user.CompletedLevels) != 0 {
		t.Fatalf("failing attempt mutated progress: %+v", user)
	}
	if best, ok := user.BestScoreFor(1); !ok || best != 1 {
		t.Fatalf("expected stored best 1, got %d ok=%v", best, ok)
	}

	level2, _ := service.GetLevel(ctx, "level-2")
	if level2.Status != domain.StatusLocked {
		t.Fatalf("level 2 must stay locked after a fail, got %s", level2.Status)
	}
}

func TestSubmitQuizPassThresholds(t *testing.T) {
	cases := []struct {
		total   int
		score   int
		passing bool
	}{
		{5, 3, true},
		{5, 2, false},
		{3, 2, true},
		{3, 1, false},
		{2, 2, true},
		{2, 1, false},
	}

	for _, tc := range cases {
		levels := memory.NewLevelStore([]domain.Level{
			makeLevel("lvl", 1, domain.StatusUnlocked, tc.total),
		})
		users := memory.NewUserStore()
		seedUser(t, users, "u1")
		service := app.NewProgressionService(levels, users, nil)

		answers := make([]int, tc.total)
		for i := 0; i < tc.score; i++ {
			answers[i] = 1 // correct index in makeLevel
		}
		for i := tc.score; i < tc.total; i++ {
			answers[i] = 0
		}

		result, err := service.SubmitQuiz(context.Background(), "lvl", "u1", answers)
		if err != nil {
			t.Fatalf("total=%d score=%d: %v", tc.total, tc.score, err)
		}
		if result.Passed != tc.passing {
			t.Fatalf("total=%d score=%d: expected passed=%v, got %v", tc.total, tc.score, tc.passing, result.Passed)
		}
	}
}

func TestSubmitQuizLastLevelPassHasNoNext(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	// Unlock and pass level 2 (the last one, 3 questions).
	if _, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 1, 1, 2, 1}); err != nil {
		t.Fatalf("pass level 1: %v", err)
	}
	result, err := service.SubmitQuiz(ctx, "level-2", "u1", []int{1, 1, 1})
	if err != nil {
		t.Fatalf("pass level 2: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	if result.UnlockedNext {
		t.Fatalf("last level must report unlockedNext=false")
	}
}

func TestSubmitQuizWrongAnswerCount(t *testing.T) {
	ctx := context.Background()
	service, _, users := newTestService(t)

	_, err := service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 1})
	if !errors.Is(err, domain.ErrInvalidAnswers) {
		t.Fatalf("expected invalid answers error, got %v", err)
	}
	_, err = service.SubmitQuiz(ctx, "level-1", "u1", nil)
	if !errors.Is(err, domain.ErrInvalidAnswers) {
		t.Fatalf("expected invalid answers error for nil, got %v", err)
	}

	user, _ := users.FindByID(ctx, "u1")
	if user.TotalPoints != 0 || len(user.LevelScores) != 0 {
		t.Fatalf("invalid submission mutated state: %+v", user)
	}
}

func TestSubmitQuizUnknownLevelAndUser(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	if _, err := service.SubmitQuiz(ctx, "nope", "u1", []int{1}); !errors.Is(err, domain.ErrLevelNotFound) {
		t.Fatalf("expected level not found, got %v", err)
	}
	if _, err := service.SubmitQuiz(ctx, "level-1", "ghost", []int{1, 1, 1, 2, 1}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestSubmitQuizConcurrentRetriesStayMonotonic(t *testing.T) {
	ctx := context.Background()
	service, _, users := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = service.SubmitQuiz(ctx, "level-1", "u1", []int{1, 1, 1, 2, 1})
		}()
	}
	wg.Wait()

	user, _ := users.FindByID(ctx, "u1")
	if user.TotalPoints != 50 {
		t.Fatalf("concurrent perfect retries must credit 50 exactly once, got %d", user.TotalPoints)
	}
	if len(user.CompletedLevels) != 1 {
		t.Fatalf("expected one completed entry, got %v", user.CompletedLevels)
	}
}

func TestGetQuizWithholdsCorrectIndex(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	quiz, total, err := service.GetQuiz(ctx, "level-1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if total != 5 || len(quiz) != 5 {
		t.Fatalf("expected 5 questions, got %d", total)
	}
	for _, q := range quiz {
		if q.Question == "" || len(q.Options) == 0 {
			t.Fatalf("expected question text and options, got %+v", q)
		}
	}
}

// newTestService builds the engine over in-memory stores with two levels:
// level 1 unlocked (5 questions, corrects [1,1,1,2,1]) and level 2 locked
// (3 questions, corrects all 1).
func newTestService(t *testing.T) (*app.ProgressionService, *memory.LevelStore, *memory.UserStore) {
	t.Helper()
	level1 := makeLevel("level-1", 1, domain.StatusUnlocked, 5)
	level1.Questions[3].CorrectIndex = 2
	level2 := makeLevel("level-2", 2, domain.StatusLocked, 3)

	levels := memory.NewLevelStore([]domain.Level{level1, level2})
	users := memory.NewUserStore()
	seedUser(t, users, "u1")
	return app.NewProgressionService(levels, users, nil), levels, users
}

func makeLevel(id string, number int, status domain.LevelStatus, questions int) domain.Level {
	level := domain.Level{
		ID:          id,
		LevelNumber: number,
		Title:       "Level",
		Intro:       "intro",
		Content:     "content",
		Status:      status,
	}
	for i := 0; i < questions; i++ {
		level.Questions = append(level.Questions, domain.QuizQuestion{
			ID:           "q" + id,
			Question:     "Pick the right option",
			Options:      []string{"wrong", "right", "also wrong"},
			CorrectIndex: 1,
		})
	}
	return level
}

func seedUser(t *testing.T, users *memory.UserStore, id string) {
	t.Helper()
	err := users.Create(context.Background(), domain.User{
		ID:              id,
		Name:            "Alice",
		Email:           id + "@example.com",
		CompletedLevels: []int{},
		LevelScores:     []domain.LevelScore{},
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}
