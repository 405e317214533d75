package prescription

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/musclemap/musclemap/internal/errors"
	"github.com/musclemap/musclemap/internal/sqlite"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"
)

// Sentinel errors surfaced to the boundary layer.
var (
	ErrExerciseNotFound     = errors.NewSentinel("exercise not found")
	ErrGeneratorUnavailable = errors.NewSentinel("exercise generator not configured")
)

// generator drafts new catalog entries. Implemented by ExerciseGenerator;
// faked in tests.
type generator interface {
	Generate(ctx context.Context, name string, muscleIDs []string) (Exercise, error)
}

// Service is the application-facing API for prescriptions and catalog
// management. It owns the catalog cache and the recovery resolver; all
// per-solve state lives inside the backend call.
type Service struct {
	logger    *slog.Logger
	repo      *Repository
	catalog   *CatalogCache
	recovery  *RecoveryResolver
	backend   SolverBackend
	markdown  goldmark.Markdown
	generator generator
}

// NewService wires a service over db using the given backend. gen may be nil
// when exercise generation is not configured.
func NewService(logger *slog.Logger, db *sqlite.Database, backend SolverBackend, gen generator) *Service {
	repo := NewRepository(db)
	return &Service{
		logger:    logger,
		repo:      repo,
		catalog:   NewCatalogCache(repo),
		recovery:  NewRecoveryResolver(repo),
		backend:   backend,
		markdown:  goldmark.New(),
		generator: gen,
	}
}

// Prescribe runs one solve. The catalog, the muscle names, and the recovery
// windows are loaded concurrently before the backend is invoked; any load
// failure aborts the solve unmodified.
func (s *Service) Prescribe(ctx context.Context, req PrescriptionRequest) (PrescriptionResult, error) {
	var (
		catalog []Exercise
		names   map[string]string
		windows RecoveryWindows
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.catalog.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = s.repo.GetMuscleNames(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		windows, err = s.recovery.Resolve(gctx, req.RecentWorkoutIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return PrescriptionResult{}, fmt.Errorf("prepare solve: %w", err)
	}

	packing := s.backend.Solve(catalog, req, windows)
	for id, entry := range packing.Coverage {
		if name, ok := names[id]; ok {
			entry.Name = name
		} else {
			entry.Name = id
		}
		packing.Coverage[id] = entry
	}

	s.logger.InfoContext(ctx, "prescription solved",
		slog.String("backend", s.backend.Name()),
		slog.Int("exercises", len(packing.Exercises)),
		slog.Int("durationSeconds", packing.ActualDurationSeconds),
		slog.Int("balanceIssues", len(packing.BalanceIssues)),
	)
	if len(packing.BalanceIssues) > 0 {
		s.logger.WarnContext(ctx, "prescription balance issues",
			slog.String("issues", strings.Join(packing.BalanceIssues, "; ")))
	}

	return PrescriptionResult{
		Exercises:             packing.Exercises,
		Coverage:              packing.Coverage,
		ActualDurationSeconds: packing.ActualDurationSeconds,
		Substitutions:         packing.Substitutions,
		BalanceIssues:         packing.BalanceIssues,
	}, nil
}

// ListExercises returns the cached catalog.
func (s *Service) ListExercises(ctx context.Context) ([]Exercise, error) {
	return s.catalog.Get(ctx)
}

// GetExercise returns one catalog entry plus its description rendered to
// HTML.
func (s *Service) GetExercise(ctx context.Context, id string) (Exercise, string, error) {
	catalog, err := s.catalog.Get(ctx)
	if err != nil {
		return Exercise{}, "", err
	}
	for _, exercise := range catalog {
		if exercise.ID != id {
			continue
		}
		var html strings.Builder
		if exercise.DescriptionMarkdown != "" {
			if err := s.markdown.Convert([]byte(exercise.DescriptionMarkdown), &html); err != nil {
				return Exercise{}, "", fmt.Errorf("render description for %s: %w", id, err)
			}
		}
		return exercise, html.String(), nil
	}
	return Exercise{}, "", ErrExerciseNotFound
}

// RecordWorkout persists a performed workout and returns its id. The
// timestamp defaults to now when zero.
func (s *Service) RecordWorkout(ctx context.Context, performedAt time.Time, entries []WorkoutEntry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("workout has no exercises")
	}
	if performedAt.IsZero() {
		performedAt = time.Now()
	}
	id := uuid.NewString()
	if err := s.repo.InsertWorkout(ctx, id, performedAt, entries); err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "workout recorded",
		slog.String("workoutID", id),
		slog.Int("exercises", len(entries)),
	)
	return id, nil
}

// UpdateExercise edits a catalog entry and invalidates the cache.
func (s *Service) UpdateExercise(ctx context.Context, id string, difficulty, restSeconds int, descriptionMarkdown string) error {
	if difficulty < 1 || difficulty > 5 {
		return fmt.Errorf("difficulty %d out of range", difficulty)
	}
	if restSeconds <= 0 {
		return fmt.Errorf("rest seconds %d out of range", restSeconds)
	}
	if err := s.repo.UpdateExercise(ctx, id, difficulty, restSeconds, descriptionMarkdown); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrExerciseNotFound
		}
		return err
	}
	s.catalog.Invalidate()
	return nil
}

// GenerateExercise drafts a new exercise, persists it, and invalidates the
// cache.
func (s *Service) GenerateExercise(ctx context.Context, name string) (Exercise, error) {
	if s.generator == nil {
		return Exercise{}, ErrGeneratorUnavailable
	}
	names, err := s.repo.GetMuscleNames(ctx)
	if err != nil {
		return Exercise{}, err
	}
	muscleIDs := make([]string, 0, len(names))
	for id := range names {
		muscleIDs = append(muscleIDs, id)
	}
	sort.Strings(muscleIDs)

	exercise, err := s.generator.Generate(ctx, name, muscleIDs)
	if err != nil {
		return Exercise{}, fmt.Errorf("generate exercise: %w", err)
	}
	if err := s.repo.InsertExercise(ctx, exercise); err != nil {
		return Exercise{}, err
	}
	s.catalog.Invalidate()
	s.logger.InfoContext(ctx, "exercise generated",
		slog.String("exerciseID", exercise.ID),
	)
	return exercise, nil
}
