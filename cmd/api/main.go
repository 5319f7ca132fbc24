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

	"github.com/jhoicas/comanda-api/internal/application/auth"
	"github.com/jhoicas/comanda-api/internal/application/catalog"
	"github.com/jhoicas/comanda-api/internal/application/deliveryareas"
	"github.com/jhoicas/comanda-api/internal/application/orders"
	"github.com/jhoicas/comanda-api/internal/application/plans"
	"github.com/jhoicas/comanda-api/internal/application/reports"
	"github.com/jhoicas/comanda-api/internal/application/tables"
	infrapdf "github.com/jhoicas/comanda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/comanda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/comanda-api/internal/infrastructure/viacep"
	"github.com/jhoicas/comanda-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/jhoicas/comanda-api/internal/interfaces/http"
	"github.com/jhoicas/comanda-api/pkg/config"
	"github.com/jhoicas/comanda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	restaurantRepo := postgres.NewRestaurantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	tableRepo := postgres.NewTableRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	addonRepo := postgres.NewAddonRepository(pool)
	areaRepo := postgres.NewDeliveryAreaRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := whatsapp.NewSender(cfg.Notify, log.Component("notify"))
	addresses := viacep.NewClient(cfg.ViaCEP)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	authUC := auth.NewUseCase(userRepo, restaurantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tableUC := tables.NewUseCase(txRunner, tableRepo, restaurantRepo, orderRepo)
	orderUC := orders.NewCreateOrderUseCase(
		txRunner, productRepo, addonRepo, tableRepo, areaRepo, orderRepo,
		notifier, addresses, log.Component("orders"),
	)
	planUC := plans.NewUseCase(txRunner, restaurantRepo, cfg.Sweep.GraceDays, log.Component("plans"))
	catalogUC := catalog.NewUseCase(productRepo, categoryRepo, addonRepo)
	areaUC := deliveryareas.NewUseCase(areaRepo)
	reportUC := reports.NewUseCase(reportRepo, restaurantRepo, pdfGenerator)

	// Varredura diária de downgrade dentro do processo da API (opcional; em
	// produção com múltiplas réplicas, usar cmd/sweeper agendado externamente).
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if cfg.Sweep.InProcess {
		sweeper := plans.NewSweeper(planUC, cfg.Sweep.Hour, log)
		go sweeper.RunForever(sweepCtx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comanda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		TableUC:        tableUC,
		OrderUC:        orderUC,
		PlanUC:         planUC,
		CatalogUC:      catalogUC,
		AreaUC:         areaUC,
		ReportUC:       reportUC,
		RestaurantRepo: restaurantRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
