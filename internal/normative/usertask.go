package normative

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/normgate/internal/llm"
)

// TaskGoal is the model's summary of what a query asks the assistant to do.
type TaskGoal struct {
	Name        string `json:"name"`
	Goal        string `json:"goal"`
	Description string `json:"description"`
}

// Validate implements llm.Validator.
func (g TaskGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// UserTask is the per-request endeavour derived from a query.
type UserTask struct {
	Endeavour
	Query string
	Goal  string
}

// Text renders the task for prompts that score the task as a whole.
func (t *UserTask) Text() string {
	var b strings.Builder
	b.WriteString("Name: " + t.Name + "\n")
	b.WriteString("Goal: " + t.Goal + "\n")
	b.WriteString("Description: " + t.Description + "\n")
	b.WriteString("Query: " + t.Query)
	return b.String()
}

// PropositionSource yields the propositions implied by a query.
type PropositionSource interface {
	ExtractPropositions(ctx context.Context, query string) ([]Proposition, error)
}

// UserTaskBuilder derives a UserTask from a query.
type UserTaskBuilder struct {
	props  PropositionSource
	gw     llm.Gateway
	logger *zap.Logger
}

// NewUserTaskBuilder returns a builder.
func NewUserTaskBuilder(props PropositionSource, gw llm.Gateway, logger *zap.Logger) *UserTaskBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserTaskBuilder{props: props, gw: gw, logger: logger.Named("usertask")}
}

// FromQuery runs proposition extraction and goal derivation concurrently.
// Either failure fails the whole derivation.
func (b *UserTaskBuilder) FromQuery(ctx context.Context, query string) (*UserTask, error) {
	var (
		props []Proposition
		goal  TaskGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		props, err = b.props.ExtractPropositions(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		goal, err = b.Goal(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		b.logger.Error("user task derivation failed", zap.Error(err))
		return nil, err
	}

	task := &UserTask{
		Endeavour: NewEndeavour(goal.Name, goal.Description, Default, props),
		Query:     query,
		Goal:      goal.Goal,
	}
	b.logger.Info("user task derived",
		zap.String("task_id", task.ID),
		zap.String("name", task.Name),
		zap.Int("propositions", len(props)))
	return task, nil
}

// Goal asks the model for the task's name, goal and description.
func (b *UserTaskBuilder) Goal(ctx context.Context, query string) (TaskGoal, error) {
	prompt := strings.ReplaceAll(taskGoalInstructions, "{{query}}", query)
	messages := []llm.Message{llm.System(taskGoalSystem), llm.User(prompt)}
	schema := llm.Schema{Name: "task_goal", Definition: json.RawMessage(taskGoalSchema)}

	var goal TaskGoal
	if err := b.gw.CompleteStructured(ctx, messages, schema, llm.ModeBalanced, &goal); err != nil {
		return TaskGoal{}, err
	}
	return goal, nil
}
