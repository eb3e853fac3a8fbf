package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	// 1. Open DB connection (connection pooling)
	dsn := cfg.DBConnectionString
	// Local development runs without SSL; production connection strings
	// carry their own ssl settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Initialize S3 client
	s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})
	storage := service.NewS3Storage(s3Client, cfg.S3Bucket, cfg.S3URL, cfg.S3PublicBaseURL)

	// 3. Initialize validator and AI clients
	validate := validator.New(validator.WithRequiredStructEnabled())

	textGen, imageGen, stt, err := service.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ImageModel, cfg.SpeechModel)
	if err != nil {
		return nil, nil, err
	}

	// 4. Initialize repositories & services & handlers
	brandRepo := repository.NewBrandRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	contentRepo := repository.NewContentRepository(db)

	quotaSvc := service.NewQuotaService(contentRepo, mediaRepo, cfg.MaxGenerationsPerMonth, cfg.MaxTranscriptionsPerMonth, logger)
	brandSvc := service.NewBrandService(brandRepo, logger)
	imageSvc := service.NewImageService(imageGen, storage, logger)
	generationSvc := service.NewGenerationService(quotaSvc, brandSvc, textGen, imageSvc, contentRepo, cfg.StandardModel, logger)
	mediaSvc := service.NewMediaService(mediaRepo, storage, logger)
	transcriptionSvc := service.NewTranscriptionService(mediaRepo, storage, stt, quotaSvc, logger)
	repurposeSvc := service.NewRepurposeService(mediaRepo, contentRepo, brandSvc, quotaSvc, textGen, cfg.StandardModel, logger)
	contentSvc := service.NewContentService(contentRepo, logger)

	generateHandler := handler.NewGenerateHandler(generationSvc, quotaSvc, validate, logger)
	brandHandler := handler.NewBrandHandler(brandSvc, validate, logger)
	mediaHandler := handler.NewMediaHandler(mediaSvc, transcriptionSvc, repurposeSvc, validate, logger)
	contentHandler := handler.NewContentHandler(contentSvc, validate, logger)

	// 5. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 6. Create ServeMux router
	apiV1Mux := http.NewServeMux()
	generateHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	brandHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	mediaHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	contentHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 7. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger, c.Handler(mux)), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
