package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-bizbook/internal/handler"
	"go-bizbook/internal/middleware"
	"go-bizbook/internal/model"
	"go-bizbook/internal/repository"
	"go-bizbook/internal/service"
	"go-bizbook/internal/ws"
	"go-bizbook/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Sale{},
		&model.Customer{},
		&model.Employee{},
		&model.Supplier{},
		&model.Income{},
		&model.Remittance{},
		&model.UserSetting{},
		&model.OnlineUser{},
		&model.AuditLog{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	incomeRepo := repository.NewIncomeRepo(db)
	remittanceRepo := repository.NewRemittanceRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	presenceRepo := repository.NewPresenceRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	auditLogger := service.NewAuditLogger(auditRepo)
	authService := service.NewAuthService(userRepo, settingRepo, presenceRepo, wsHub)
	productService := service.NewProductService(db, productRepo, auditLogger, wsHub)
	saleService := service.NewSaleService(db, saleRepo, productRepo, auditLogger, wsHub)
	dashService := service.NewDashboardService(db)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	employeeHandler := handler.NewEmployeeHandler(employeeRepo)
	supplierHandler := handler.NewSupplierHandler(supplierRepo)
	incomeHandler := handler.NewIncomeHandler(incomeRepo, customerRepo, employeeRepo)
	remittanceHandler := handler.NewRemittanceHandler(remittanceRepo, supplierRepo, employeeRepo)
	settingHandler := handler.NewSettingHandler(settingRepo)
	presenceHandler := handler.NewPresenceHandler(authService, presenceRepo)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "BizBook API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	requireAuth := middleware.RequireAuth(userRepo)

	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Get("/me", requireAuth, authHandler.Me)
	auth.Post("/refresh", requireAuth, authHandler.Refresh)
	auth.Post("/change-password", requireAuth, authHandler.ChangePassword)

	protected := api.Group("", requireAuth)

	// Product Routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/search/all", productHandler.SearchProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)
	protected.Post("/products/:id/stock", productHandler.AdjustStock)

	// Sale Routes
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Put("/sales/:id", saleHandler.UpdateSale)
	protected.Delete("/sales/:id", saleHandler.DeleteSale)

	// Customer Routes
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/all", customerHandler.GetAllCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", customerHandler.DeleteCustomer)

	// Employee Routes
	protected.Get("/employees", employeeHandler.GetEmployees)
	protected.Get("/employees/all", employeeHandler.GetAllEmployees)
	protected.Get("/employees/:id", employeeHandler.GetEmployee)
	protected.Post("/employees", employeeHandler.CreateEmployee)
	protected.Put("/employees/:id", employeeHandler.UpdateEmployee)
	protected.Delete("/employees/:id", employeeHandler.DeleteEmployee)

	// Supplier Routes
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Get("/suppliers/all", supplierHandler.GetAllSuppliers)
	protected.Get("/suppliers/:id", supplierHandler.GetSupplier)
	protected.Post("/suppliers", supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", supplierHandler.DeleteSupplier)

	// Income Routes
	protected.Get("/income", incomeHandler.GetIncomes)
	protected.Get("/income/:id", incomeHandler.GetIncome)
	protected.Post("/income", incomeHandler.CreateIncome)
	protected.Put("/income/:id", incomeHandler.UpdateIncome)
	protected.Delete("/income/:id", incomeHandler.DeleteIncome)

	// Remittance Routes
	protected.Get("/remittance", remittanceHandler.GetRemittances)
	protected.Get("/remittance/:id", remittanceHandler.GetRemittance)
	protected.Post("/remittance", remittanceHandler.CreateRemittance)
	protected.Put("/remittance/:id", remittanceHandler.UpdateRemittance)
	protected.Delete("/remittance/:id", remittanceHandler.DeleteRemittance)

	// Settings Routes
	protected.Get("/settings", settingHandler.GetSettings)
	protected.Put("/settings", settingHandler.UpdateSettings)

	// Presence Routes
	protected.Post("/users/heartbeat", presenceHandler.Heartbeat)
	protected.Get("/users/online", presenceHandler.GetOnlineUsers)
	protected.Get("/users/online/count", presenceHandler.GetOnlineCount)
	protected.Get("/users/online/:id/status", presenceHandler.GetUserStatus)
	protected.Post("/users/online/cleanup", presenceHandler.Cleanup)
	protected.Put("/users/action", presenceHandler.UpdateAction)
	protected.Delete("/users/action", presenceHandler.ClearAction)

	// Dashboard Routes
	protected.Get("/dashboard/stats", dashHandler.GetStats)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
