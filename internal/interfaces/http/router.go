package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comanda-api/internal/application/auth"
	"github.com/jhoicas/comanda-api/internal/application/catalog"
	"github.com/jhoicas/comanda-api/internal/application/deliveryareas"
	"github.com/jhoicas/comanda-api/internal/application/orders"
	"github.com/jhoicas/comanda-api/internal/application/plans"
	"github.com/jhoicas/comanda-api/internal/application/reports"
	"github.com/jhoicas/comanda-api/internal/application/tables"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	TableUC        *tables.UseCase
	OrderUC        *orders.CreateOrderUseCase
	PlanUC         *plans.UseCase
	CatalogUC      *catalog.UseCase
	AreaUC         *deliveryareas.UseCase
	ReportUC       *reports.UseCase
	RestaurantRepo repository.RestaurantRepository
	JWTSecret      string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Autoatendimento (público, identificado por slug)
	publicHandler := NewPublicHandler(deps.RestaurantRepo, deps.OrderUC, deps.AreaUC, deps.CatalogUC)
	public := app.Group("/public/:slug")
	public.Get("/menu", publicHandler.Menu)
	public.Get("/delivery-fee", publicHandler.QuoteDeliveryFee)
	public.Post("/orders/table", publicHandler.CreateTableOrder)
	public.Post("/orders/delivery", publicHandler.CreateDeliveryOrder)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuários (só dono cria assentos)
	protected.Post("/users", RequireOwner(), authHandler.RegisterUser)

	// Mesas
	tableHandler := NewTableHandler(deps.TableUC)
	tablesGroup := protected.Group("/tables")
	tablesGroup.Post("/", tableHandler.Create)
	tablesGroup.Get("/", tableHandler.List)
	tablesGroup.Put("/:id/number", tableHandler.Renumber)
	tablesGroup.Put("/:id/customer", tableHandler.RenameCustomer)
	tablesGroup.Post("/:id/pay", tableHandler.Pay)
	tablesGroup.Post("/:id/reset", tableHandler.Reset)
	tablesGroup.Get("/:id/orders", tableHandler.ListOrders)

	// Pedidos (equipe)
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)

	// Plano e cota (mutações só dono)
	planHandler := NewPlanHandler(deps.PlanUC)
	planGroup := protected.Group("/plan")
	planGroup.Get("/", planHandler.GetPlan)
	planGroup.Get("/quota", planHandler.CheckQuota)
	planGroup.Post("/upgrade", RequireOwner(), planHandler.Upgrade)
	planGroup.Post("/extra-package", RequireOwner(), planHandler.BuyExtraPackage)

	// Cardápio
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Put("/:id", catalogHandler.UpdateProduct)
	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Delete("/:id", catalogHandler.DeleteCategory)
	addons := protected.Group("/addons")
	addons.Post("/", catalogHandler.CreateAddon)
	addons.Get("/", catalogHandler.ListAddons)
	addons.Put("/:id", catalogHandler.UpdateAddon)

	// Áreas de entrega (só dono muta)
	areaHandler := NewDeliveryAreaHandler(deps.AreaUC)
	areas := protected.Group("/delivery-areas")
	areas.Post("/", RequireOwner(), areaHandler.Create)
	areas.Get("/", areaHandler.List)
	areas.Delete("/:id", RequireOwner(), areaHandler.Delete)

	// Relatórios (só dono)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports", RequireOwner())
	reportsGroup.Get("/daily", reportHandler.Daily)
	reportsGroup.Get("/daily/pdf", reportHandler.DailyPDF)
}
