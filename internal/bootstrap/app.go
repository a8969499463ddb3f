package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"medhub-backend/internal/documents"
	"medhub-backend/internal/extractions"
	"medhub-backend/internal/llm"
	"medhub-backend/internal/llm/gemini"
	"medhub-backend/internal/processing"
	"medhub-backend/internal/queue"
	"medhub-backend/internal/readings"
	"medhub-backend/internal/shared/auth"
	"medhub-backend/internal/shared/config"
	"medhub-backend/internal/shared/server"
	"medhub-backend/internal/shared/storage/db"
	"medhub-backend/internal/shared/storage/object"
	gcsstore "medhub-backend/internal/shared/storage/object/gcs"
	localstore "medhub-backend/internal/shared/storage/object/local"
	"medhub-backend/internal/symptoms"
	"medhub-backend/internal/users"
)

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.ObjectStore
	Queue    *queue.SQSClient
	Verifier auth.Verifier
	LLM      llm.Client

	DocumentsRepo   documents.Repo
	ExtractionsRepo extractions.Repo
	ReadingsRepo    readings.Repo
	SymptomsRepo    symptoms.Repo
	UsersRepo       users.Repo

	DocumentsService *documents.Service
	ReadingsService  *readings.Service
	SymptomsService  *symptoms.Service
	UsersService     *users.Service
	Processor        *processing.Processor

	DocumentsHandler   *documents.Handler
	ExtractionsHandler *extractions.Handler
	ReadingsHandler    *readings.Handler
	SymptomsHandler    *symptoms.Handler
	UsersHandler       *users.Handler
}

// Build prepares shared dependencies and wires the router, using pool
// sizing suited to the long-running API server.
func Build(cfg config.Config) (*App, error) {
	return build(cfg, db.DefaultServerOptions())
}

// BuildWorker is Build with the worker's smaller connection pool.
func BuildWorker(cfg config.Config) (*App, error) {
	return build(cfg, db.DefaultWorkerOptions())
}

func build(cfg config.Config, dbDefaults db.Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg, dbDefaults)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Queue:    queueClient,
		Verifier: verifier,
		LLM:      llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Verifier:          app.Verifier,
		DocumentHandler:   app.DocumentsHandler,
		ExtractionHandler: app.ExtractionsHandler,
		ReadingHandler:    app.ReadingsHandler,
		SymptomHandler:    app.SymptomsHandler,
		UserHandler:       app.UsersHandler,
	})

	return app, nil
}

// Close releases held connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var firstErr error
	if closer, ok := a.LLM.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			firstErr = err
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildDB(ctx context.Context, cfg config.Config, defaults db.Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(defaults)
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "gcs":
		if strings.TrimSpace(cfg.GCSBucket) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: GCS_BUCKET empty; object storage disabled")
				return gcsstore.NewDisabled(), nil
			}
			return nil, fmt.Errorf("OBJECT_STORE=gcs requires GCS_BUCKET")
		}
		return gcsstore.New(ctx, cfg.GCSBucket, cfg.GCSPrefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (*queue.SQSClient, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.SQSQueueURL, cfg.AWSRegion)
}

func buildVerifier(cfg config.Config) (auth.Verifier, error) {
	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: JWT_SECRET empty; using dev signing key")
			secret = "dev-secret"
		} else {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
	}
	return auth.NewHS256Verifier(secret)
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; extraction model disabled")
		return llm.PlaceholderClient{}, nil
	}
	return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
}

func buildServices(app *App) {
	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.ExtractionsRepo = &extractions.PGRepo{DB: app.DB}
		app.ReadingsRepo = &readings.PGRepo{DB: app.DB}
		app.SymptomsRepo = &symptoms.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ExtractionsRepo = extractions.NewMemoryRepo()
		app.ReadingsRepo = readings.NewMemoryRepo()
		app.SymptomsRepo = symptoms.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	docSvc := &documents.Service{Store: app.Store, Repo: app.DocumentsRepo}
	if app.Queue != nil {
		docSvc.Queue = app.Queue
	}

	app.DocumentsService = docSvc
	app.ReadingsService = &readings.Service{Repo: app.ReadingsRepo}
	app.SymptomsService = &symptoms.Service{Repo: app.SymptomsRepo}
	app.UsersService = users.NewService(app.UsersRepo)
	app.Processor = &processing.Processor{
		Docs:    app.DocumentsRepo,
		Results: app.ExtractionsRepo,
		Store:   app.Store,
		LLM:     app.LLM,
	}

	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.ExtractionsHandler = extractions.NewHandler(app.ExtractionsRepo)
	app.ReadingsHandler = readings.NewHandler(app.ReadingsService)
	app.SymptomsHandler = symptoms.NewHandler(app.SymptomsService)
	app.UsersHandler = users.NewHandler(app.UsersService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
