package services

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"choretracker/internal/clock"
	"choretracker/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	clk    *clock.Clock
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	clk *clock.Clock,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
		clk:    clk,
	}
}

func (s *taskServiceImpl) ListAllTasks(ctx context.Context) ([]models.Task, error) {
	const selectAllTasksQuery = `
SELECT owner_id,
       name,
       type,
       frequency_days,
       last_completed
FROM tasks
ORDER BY id
`
	rows, err := s.pgPool.Query(ctx, selectAllTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select all tasks")
		return nil, err
	}
	defer rows.Close()

	tasks, err := s.scanTasks(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected all tasks")
	return tasks, nil
}

func (s *taskServiceImpl) ListTasksByOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	const selectTasksByOwnerQuery = `
SELECT owner_id,
       name,
       type,
       frequency_days,
       last_completed
FROM tasks
WHERE owner_id = $1
ORDER BY id
`
	rows, err := s.pgPool.Query(ctx, selectTasksByOwnerQuery, ownerID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Msg("failed to select tasks by owner id")
		return nil, err
	}
	defer rows.Close()

	tasks, err := s.scanTasks(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("owner_id", ownerID).
		Msg("selected tasks by owner id")
	return tasks, nil
}

func (s *taskServiceImpl) FindTasksByNamePrefix(ctx context.Context, ownerID int64, prefix string) ([]models.Task, error) {
	const selectTasksByNamePrefixQuery = `
SELECT owner_id,
       name,
       type,
       frequency_days,
       last_completed
FROM tasks
WHERE owner_id = $1 AND
      starts_with(name, $2)
ORDER BY id
`
	rows, err := s.pgPool.Query(ctx, selectTasksByNamePrefixQuery, ownerID, prefix)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Msg("failed to select tasks by name prefix")
		return nil, err
	}
	defer rows.Close()

	tasks, err := s.scanTasks(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("owner_id", ownerID).
		Str("prefix", prefix).
		Msg("selected tasks by name prefix")
	return tasks, nil
}

func (s *taskServiceImpl) AddTask(ctx context.Context, task models.Task) error {
	task.LastCompleted = s.clk.Today()

	const insertTaskQuery = `
INSERT INTO tasks (owner_id,
                   name,
                   type,
                   frequency_days,
                   last_completed)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.OwnerID,
		task.Name,
		int(task.Type),
		task.FrequencyDays,
		task.LastCompleted.String(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Error().
				Int64("owner_id", task.OwnerID).
				Str("name", task.Name).
				Msg("task with this name already exists")
			return ErrTaskAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Int64("owner_id", task.OwnerID).
			Str("name", task.Name).
			Msg("failed to insert task")
		return err
	}

	s.logger.Info().
		Int64("owner_id", task.OwnerID).
		Str("name", task.Name).
		Str("type", task.Type.String()).
		Msg("added task")
	return nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID int64, name string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE owner_id = $1 AND name = $2
`
	tag, err := s.pgPool.Exec(ctx, deleteTaskQuery, ownerID, name)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Str("name", name).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("owner_id", ownerID).
			Str("name", name).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("owner_id", ownerID).
		Str("name", name).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) CompleteTask(ctx context.Context, ownerID int64, name string) error {
	today := s.clk.Today()

	const updateLastCompletedQuery = `
UPDATE tasks
SET last_completed = $1
WHERE owner_id = $2 AND name = $3
`
	tag, err := s.pgPool.Exec(ctx, updateLastCompletedQuery, today.String(), ownerID, name)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("owner_id", ownerID).
			Str("name", name).
			Msg("failed to complete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Int64("owner_id", ownerID).
			Str("name", name).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("owner_id", ownerID).
		Str("name", name).
		Str("last_completed", today.String()).
		Msg("completed task")
	return nil
}

// scanTasks drains the rows, skipping records with a malformed date or an
// unknown type tag so one bad row never aborts a listing.
func (s *taskServiceImpl) scanTasks(rows pgx.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var (
			task          models.Task
			typeTag       int
			lastCompleted string
		)
		err := rows.Scan(
			&task.OwnerID,
			&task.Name,
			&typeTag,
			&task.FrequencyDays,
			&lastCompleted,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}

		task.Type, err = models.ParseTaskType(typeTag)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("owner_id", task.OwnerID).
				Str("name", task.Name).
				Msg("skipping task with unsupported type tag")
			continue
		}

		task.LastCompleted, err = clock.ParseDate(lastCompleted)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int64("owner_id", task.OwnerID).
				Str("name", task.Name).
				Msg("skipping task with malformed date")
			continue
		}

		tasks = append(tasks, task)
	}

	err := rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return tasks, nil
}
