package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/classifier"
	"resume-matcher/internal/embedding"
	"resume-matcher/internal/extract"
	"resume-matcher/internal/llm"
	"resume-matcher/internal/llm/gemini"
	"resume-matcher/internal/scoring"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
	"resume-matcher/internal/shared/storage/db"
	"resume-matcher/internal/shared/storage/object"
	localstore "resume-matcher/internal/shared/storage/object/local"
	s3store "resume-matcher/internal/shared/storage/object/s3"
	"resume-matcher/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.Store
	Engine          *scoring.Engine
	AnalysesRepo    analyses.Repo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if err := telemetry.Init(cfg.Env, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine, err := BuildEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo analyses.Repo
	if sqlDB != nil {
		repo = &analyses.PGRepo{DB: sqlDB}
	} else {
		repo = analyses.NewMemoryRepo()
	}

	svc := &analyses.Service{
		Repo:      repo,
		Store:     store,
		Extractor: extract.New(),
		Scorer:    engine,
	}
	handler := analyses.NewHandler(svc, cfg.MaxUploadBytes)

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Store:           store,
		Engine:          engine,
		AnalysesRepo:    repo,
		AnalysesService: svc,
		AnalysisHandler: handler,
	}
	app.Router = server.NewRouter(server.Deps{
		Config:    cfg,
		Analyses:  handler,
		AIEnabled: engine.AIConfigured(),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"database":     sqlDB != nil,
		"ai_enabled":   engine.AIConfigured(),
	})
	return app, nil
}

// BuildEngine loads the classifier and optional reviewer. A model that
// cannot be loaded is fatal; a reviewer that cannot be built only disables AI.
func BuildEngine(ctx context.Context, cfg config.Config) (*scoring.Engine, error) {
	model, err := classifier.Load(cfg.ModelPath)
	if err != nil {
		return nil, err
	}

	var reviewer llm.Reviewer = llm.Disabled{}
	if cfg.LLMEnabled && cfg.GeminiAPIKey != "" {
		r, err := gemini.NewReviewer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, telemetry.L())
		if err != nil {
			telemetry.Warn("bootstrap.reviewer_unavailable", map[string]any{"error": err})
		} else {
			reviewer = r
		}
	}

	return scoring.New(scoring.Options{
		Model:         model,
		Embedder:      embedding.NewHashingEmbedder(embedding.DefaultDimensions),
		Reviewer:      reviewer,
		ReviewTimeout: cfg.LLMTimeout,
		Logger:        telemetry.L(),
	})
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repo", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err == nil {
			err = db.RunMigrations(ctx, sqlDB)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
