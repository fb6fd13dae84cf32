package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/braxton0054/eavisystem/internal/app/controllers"
	appMigrations "github.com/braxton0054/eavisystem/internal/app/migrations"
	appRepos "github.com/braxton0054/eavisystem/internal/app/repositories"
	appRoutes "github.com/braxton0054/eavisystem/internal/app/routes"
	appServices "github.com/braxton0054/eavisystem/internal/app/services"
	"github.com/braxton0054/eavisystem/internal/admission"
	"github.com/braxton0054/eavisystem/internal/config"
	"github.com/braxton0054/eavisystem/internal/db"
	appMiddleware "github.com/braxton0054/eavisystem/internal/middleware"
	pkgAuth "github.com/braxton0054/eavisystem/internal/pkg/auth"
	"github.com/braxton0054/eavisystem/internal/pkg/email"
	"github.com/braxton0054/eavisystem/internal/pkg/filestorage"
	"github.com/braxton0054/eavisystem/internal/pkg/helpers"
	"github.com/braxton0054/eavisystem/internal/pkg/logger"
	"github.com/braxton0054/eavisystem/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Registry            *db.Registry
	Repos               *appRepos.Repositories
	FileStorage         *filestorage.LocalStorage
	JWTService          *pkgAuth.JWTService
	Campuses            *appServices.Campuses
	SettingsService     *appServices.SettingsService
	DocumentService     *appServices.DocumentService
	RegistrationService *appServices.RegistrationService
	StudentService      *appServices.StudentService
	CourseService       *appServices.CourseService
	FeeService          *appServices.FeeService
	AuthService         *appServices.AuthService
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Controllers         appRoutes.Controllers
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// The returned reporter is nil unless Rollbar is configured.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, *logger.RollbarReporter, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	envPath := config.GetEnv("ENV_PATH", ".env")

	cfg, err := config.LoadConfig(configPath, envPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, nil, err
	}

	var reporter *logger.RollbarReporter
	logCfg := logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	}
	if cfg.Logging.RollbarToken != "" {
		host, _ := os.Hostname()
		reporter = logger.NewRollbarReporter(cfg.Logging.RollbarToken, cfg.Logging.Environment, host)
		logCfg.Reporter = reporter
	}

	lgr := logger.Configure(logCfg)
	lgr.Info().
		Str("logLevel", string(logCfg.Level)).
		Str("logFormat", cfg.Logging.Format).
		Bool("rollbar", reporter != nil).
		Msg("Logger configured")
	return cfg, lgr, reporter, nil
}

// SetupDatabase connects to every campus database and runs migrations on
// each of them.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.Registry, error) {
	lgr.Info().Int("campuses", len(cfg.Campuses)).Msg("Establishing database connections...")

	dsns := make([]db.CampusDSN, 0, len(cfg.Campuses))
	for _, campus := range cfg.Campuses {
		dsns = append(dsns, db.CampusDSN{
			Campus:     campus.Key,
			ConnString: cfg.PostgresConnectionString(campus.DBName),
		})
	}

	registry, err := db.OpenRegistry(ctx, dsns, db.PoolConfig{
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		ConnMaxLifetime: helpers.ParseDuration(cfg.Database.ConnMaxLifetime, time.Hour),
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to campus databases")
		return nil, err
	}

	migrationsDir := cfg.Server.MigrationsPath
	if _, err := os.Stat(migrationsDir); err != nil {
		registry.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	for _, campus := range registry.Campuses() {
		database, err := registry.Get(campus)
		if err != nil {
			registry.Close()
			return nil, err
		}
		migrator := appMigrations.NewMigrator(database.Pool, lgr.With().Str("campus", campus).Logger())
		if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
			registry.Close()
			return nil, fmt.Errorf("campus %s: database migrations failed: %w", campus, err)
		}
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return registry, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, registry *db.Registry, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Registry: registry, Logger: lgr}
	deps.Repos = appRepos.NewRepositories(registry)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	campuses := make([]appServices.Campus, 0, len(cfg.Campuses))
	for _, c := range cfg.Campuses {
		campuses = append(campuses, appServices.Campus{Key: c.Key, Name: c.Name, StartingSequence: c.StartingSequence})
	}
	deps.Campuses = appServices.NewCampuses(cfg.Documents.DefaultFormat, campuses...)

	loc := cfg.Location()
	now := appServices.Clock(time.Now)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	mailer := email.NewEmailService(email.SendGridConfig{
		APIKey:      cfg.Email.SendGridAPIKey,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, lgr.With().Str("component", "email").Logger())

	deps.FeeService = appServices.NewFeeService(deps.FileStorage, deps.FileStorage, cfg.Documents.MaxFeeUploadBytes, lgr)

	institution := admission.Institution{
		Name:          cfg.Institution.Name,
		ShortName:     cfg.Institution.ShortName,
		EquityAccount: cfg.Institution.EquityAccount,
		KCBAccount:    cfg.Institution.KCBAccount,
		Paybill:       cfg.Institution.Paybill,
		Signatory:     cfg.Institution.Signatory,
		Directors:     cfg.Institution.Directors,
	}
	assembler := admission.NewAssembler(admission.NewFontMeasurer(), deps.FeeService, lgr.With().Str("component", "assembler").Logger())

	deps.SettingsService = appServices.NewSettingsService(deps.Repos.SettingsRepository, deps.Campuses, loc, now, lgr)
	numbers := appServices.NewAdmissionNumberService(deps.Repos.SettingsRepository, deps.Campuses, loc, now, lgr)
	deps.DocumentService = appServices.NewDocumentService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.SettingsRepository,
		deps.Campuses,
		assembler,
		deps.FileStorage,
		appServices.DocumentConfig{
			Institution: institution,
			Assets:      admission.LoadAssets(cfg.Documents.AssetsPath, lgr),
			Location:    loc,
			Timeout:     helpers.ParseDuration(cfg.Documents.GenerationTimeout, 30*time.Second),
		},
		now,
		lgr,
	)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		numbers,
		deps.DocumentService,
		mailer,
		deps.Campuses,
		cfg.Institution.Name,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Campuses, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.FileStorage, deps.Campuses, lgr)
	deps.AuthService = appServices.NewAuthService(deps.Repos.AdminRepository, deps.Campuses, deps.JWTService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(deps.AuthService, lgr),
		Settings: appControllers.NewSettingsController(deps.SettingsService),
		Students: appControllers.NewStudentController(deps.RegistrationService, deps.StudentService, deps.DocumentService),
		Courses:  appControllers.NewCourseController(deps.CourseService),
		Fees:     appControllers.NewFeeController(deps.FeeService),
	}

	return deps, nil
}

// SeedDefaults creates the configured admin account on every campus.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) error {
	return seed.CreateDefaultAdmins(ctx, deps.AuthService, deps.Registry.Campuses(),
		cfg.Admin.DefaultUsername, cfg.Admin.DefaultPassword, lgr)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))
	router.MaxMultipartMemory = cfg.Documents.MaxFeeUploadBytes + 1<<20

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, func(c *gin.Context) error {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		for _, campus := range deps.Registry.Campuses() {
			database, err := deps.Registry.Get(campus)
			if err != nil {
				return err
			}
			if err := database.Pool.Ping(ctx); err != nil {
				return fmt.Errorf("campus %s: %w", campus, err)
			}
		}
		return nil
	})

	return router, nil
}
