package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tetoy/tetoy-api/internal/application/auth"
	appstorage "github.com/tetoy/tetoy-api/internal/application/storage"
	"github.com/tetoy/tetoy-api/internal/application/usecase"
	"github.com/tetoy/tetoy-api/internal/infrastructure/postgres"
	httpRouter "github.com/tetoy/tetoy-api/internal/interfaces/http"
	"github.com/tetoy/tetoy-api/pkg/config"
	"github.com/tetoy/tetoy-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storageRepo := postgres.NewStorageRepository(pool)
	blockRepo := postgres.NewBlockRepository(pool)
	boxRepo := postgres.NewBoxRepository(pool)
	logRepo := postgres.NewActivityLogRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	countryRepo := postgres.NewCountryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	refChecker := appstorage.NewRefChecker(storageRepo, blockRepo, productRepo, userRepo, countryRepo)
	storageUC := appstorage.NewUseCase(txRunner, storageRepo, blockRepo, productRepo, userRepo, logRepo)
	boxUC := appstorage.NewBoxUseCase(txRunner, refChecker, boxRepo, productRepo)
	categoryUC := usecase.NewCategoryUseCase(txRunner, categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, storageRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	countryUC := usecase.NewCountryUseCase(countryRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tetoy API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StorageUC:  storageUC,
		BoxUC:      boxUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		UserUC:     userUC,
		CountryUC:  countryUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
