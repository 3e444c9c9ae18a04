package service

import (
	"context"

	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/repository"
)

type historyService struct {
	repo     repository.AssessmentRepo
	observer UseCaseObserver
}

// NewHistoryService returns a history reader. A nil repo reports history as
// disabled.
func NewHistoryService(repo repository.AssessmentRepo, observers ...UseCaseObserver) HistoryService {
	return &historyService{repo: repo, observer: useCaseObserverOrNoop(observers)}
}

func (s *historyService) ListHistory(ctx context.Context, req app.HistoryRequest) (out []*repository.AssessmentRecord, err error) {
	fields := map[string]any{"limit": req.Limit}
	defer observe(ctx, s.observer, "history", fields, &err)()

	if s.repo == nil {
		return nil, disabled()
	}
	out, err = s.repo.ListRecent(ctx, req.Limit)
	fields["count"] = len(out)
	return out, err
}

func (s *historyService) GetAssessment(ctx context.Context, id string) (*repository.AssessmentRecord, error) {
	if s.repo == nil {
		return nil, disabled()
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteAssessment removes a stored run and its findings.
func (s *historyService) DeleteAssessment(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "history_delete", map[string]any{"assessment_id": id}, &err)()

	if s.repo == nil {
		return disabled()
	}
	return s.repo.Delete(ctx, id)
}

func disabled() error {
	return &app.AssessError{Code: app.ErrNoHistory, Message: "history store is disabled"}
}
