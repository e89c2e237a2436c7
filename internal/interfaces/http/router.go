package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tetoy/tetoy-api/internal/application/auth"
	appstorage "github.com/tetoy/tetoy-api/internal/application/storage"
	"github.com/tetoy/tetoy-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StorageUC  *appstorage.UseCase
	BoxUC      *appstorage.BoxUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	UserUC     *usecase.UserUseCase
	CountryUC  *usecase.CountryUseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido, selectores)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)

	// Countries (protegido, catálogo semilla)
	countries := protected.Group("/countries")
	countryHandler := NewCountryHandler(deps.CountryUC)
	countries.Get("/", countryHandler.List)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Storages: agregado completo, incluidas las cajas de sus bloques (protegido)
	storages := protected.Group("/storages")
	storageHandler := NewStorageHandler(deps.StorageUC, deps.BoxUC)
	storages.Post("/", storageHandler.Create)
	storages.Get("/", storageHandler.List)
	storages.Get("/:id", storageHandler.GetByID)
	storages.Delete("/:id", storageHandler.Delete)
	storages.Get("/:id/logs", storageHandler.Logs)
	storages.Post("/:id/blocks/:blockId/boxes", storageHandler.CreateBox)
	storages.Get("/:id/blocks/:blockId/boxes", storageHandler.ListBoxes)
	storages.Post("/:id/blocks/:blockId/boxes/:boxId/checkout", storageHandler.CheckoutBox)
	storages.Delete("/:id/blocks/:blockId/boxes/:boxId", storageHandler.DeleteBox)
}
