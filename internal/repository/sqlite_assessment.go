package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/normgate/internal/db"
)

// SQLiteAssessmentRepo implements AssessmentRepo. Create writes several rows;
// run it through a db.UnitOfWork when atomicity matters.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssessmentRepo(db db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: db}
}

var _ AssessmentRepo = (*SQLiteAssessmentRepo)(nil)

// timeLayout has fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const assessmentColumns = `id, query, task_name, task_goal, recommendation,
	low_count, moderate_count, high_count, critical_count, explanation, intent_score, created_at`

func (r *SQLiteAssessmentRepo) Create(ctx context.Context, a *AssessmentRecord) error {
	query := `INSERT INTO assessments (` + assessmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Query,
		a.TaskName,
		a.TaskGoal,
		a.Recommendation,
		a.Low,
		a.Moderate,
		a.High,
		a.Critical,
		a.Explanation,
		nullableIntToValue(a.IntentScore),
		a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}

	for i, f := range a.Findings {
		_, err := r.db.ExecContext(ctx, `INSERT INTO assessment_findings
			(assessment_id, ordinal, proposition_value, risk_level, risk_score, analysis)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, i, f.PropositionValue, f.RiskLevel, f.RiskScore, f.Analysis)
		if err != nil {
			return fmt.Errorf("inserting finding %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteAssessmentRepo) GetByID(ctx context.Context, id string) (*AssessmentRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE id = ?`, id)
	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT proposition_value, risk_level, risk_score, analysis
		FROM assessment_findings WHERE assessment_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("listing findings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.PropositionValue, &f.RiskLevel, &f.RiskScore, &f.Analysis); err != nil {
			return nil, fmt.Errorf("scanning finding: %w", err)
		}
		a.Findings = append(a.Findings, f)
	}
	return a, rows.Err()
}

func (r *SQLiteAssessmentRepo) ListRecent(ctx context.Context, limit int) ([]*AssessmentRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+assessmentColumns+` FROM assessments
		ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	var out []*AssessmentRecord
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteAssessmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assessment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting assessment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s scanner) (*AssessmentRecord, error) {
	var (
		a         AssessmentRecord
		intent    sql.NullInt64
		createdAt string
	)
	err := s.Scan(&a.ID, &a.Query, &a.TaskName, &a.TaskGoal, &a.Recommendation,
		&a.Low, &a.Moderate, &a.High, &a.Critical, &a.Explanation, &intent, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}
	a.IntentScore = nullableInt(intent)
	a.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	return &a, nil
}
