package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskpad/internal/models"
	"github.com/adanyl0v/taskpad/internal/repository"
	"github.com/adanyl0v/taskpad/internal/summary"
)

const summaryInstruction = "You are a helpful personal assistant. " +
	"Address the user in second person. " +
	"Summarize the following tasks: "

type summaryServiceImpl struct {
	logger    zerolog.Logger
	tasks     repository.TaskRepository
	generator summary.Generator
}

func NewSummaryService(
	logger zerolog.Logger,
	tasks repository.TaskRepository,
	generator summary.Generator,
) SummaryService {
	return &summaryServiceImpl{
		logger:    logger,
		tasks:     tasks,
		generator: generator,
	}
}

func (s *summaryServiceImpl) GenerateSummary(ctx context.Context, userID string) (string, error) {
	tasks, err := s.tasks.ListByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	prompt := BuildSummaryPrompt(tasks)
	s.logger.Debug().
		Str("user_id", userID).
		Int("tasks", len(tasks)).
		Msg("built summary prompt")

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to generate summary")
		return "", err
	}

	s.logger.Info().
		Str("user_id", userID).
		Msg("generated summary")
	return text, nil
}

// BuildSummaryPrompt renders one line per task as
// "title - description - completed|pending - priority - due date" and
// joins them after the assistant instruction.
func BuildSummaryPrompt(tasks []*models.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		status := "pending"
		if task.Completed {
			status = "completed"
		}
		dueDate := "no due date"
		if task.DueDate != nil {
			dueDate = task.DueDate.Format(time.DateOnly)
		}
		lines = append(lines, strings.Join([]string{
			task.Title,
			task.Description,
			status,
			string(task.Priority),
			dueDate,
		}, " - "))
	}
	return summaryInstruction + strings.Join(lines, ", ")
}
