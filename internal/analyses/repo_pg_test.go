package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-matcher/internal/scoring"
)

func sampleAnalysis() Analysis {
	return Analysis{
		ID:             "analysis-1",
		UserID:         "user-1",
		DocumentKey:    "abc/123_resume.pdf",
		FileName:       "resume.pdf",
		MimeType:       "application/pdf",
		JobDescription: "Go engineer",
		OverallScore:   72.5,
		MatchLevel:     scoring.LevelGood,
		AIEnabled:      false,
		Result: scoring.AnalysisResult{
			OverallScore:    72.5,
			MatchLevel:      scoring.LevelGood,
			AIAnalysis:      scoring.DisabledAnalysis(),
			Recommendations: []string{"Add metrics"},
			MissingKeywords: []string{},
		},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPGRepoCreateStoresResultAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	analysis := sampleAnalysis()

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.UserID,
			analysis.DocumentKey,
			analysis.FileName,
			analysis.MimeType,
			analysis.JobDescription,
			analysis.OverallScore,
			analysis.MatchLevel,
			analysis.AIEnabled,
			sqlmock.AnyArg(), // result
			analysis.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func analysisRows(items ...Analysis) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "document_key", "file_name", "mime_type", "job_description",
		"overall_score", "match_level", "ai_enabled", "result", "created_at",
	})
	for _, a := range items {
		payload, _ := json.Marshal(a.Result)
		rows.AddRow(a.ID, a.UserID, a.DocumentKey, a.FileName, a.MimeType, a.JobDescription,
			a.OverallScore, a.MatchLevel, a.AIEnabled, payload, a.CreatedAt)
	}
	return rows
}

func TestPGRepoGetByIDDecodesResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	want := sampleAnalysis()
	mock.ExpectQuery("FROM analyses").
		WithArgs(want.ID, want.UserID).
		WillReturnRows(analysisRows(want))

	repo := &PGRepo{DB: db}
	got, err := repo.GetByID(context.Background(), want.UserID, want.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Result.MatchLevel != scoring.LevelGood || len(got.Result.Recommendations) != 1 {
		t.Fatalf("unexpected decoded result: %+v", got.Result)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM analyses").
		WithArgs("missing", "user-1").
		WillReturnRows(analysisRows())

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserAppliesDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	a := sampleAnalysis()
	b := sampleAnalysis()
	b.ID = "analysis-2"
	mock.ExpectQuery("FROM analyses").
		WithArgs("user-1", 20, 0).
		WillReturnRows(analysisRows(a, b))

	repo := &PGRepo{DB: db}
	items, err := repo.ListByUser(context.Background(), "user-1", 0, -3)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 2 || items[1].ID != "analysis-2" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
