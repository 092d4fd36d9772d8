package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"example.com/shop-checkout/app/internal/infra/metrics"
	"example.com/shop-checkout/app/internal/infra/persistence/mysql"
	"example.com/shop-checkout/app/internal/infra/security"
	apihttp "example.com/shop-checkout/app/internal/interface/http"
	cartuc "example.com/shop-checkout/app/internal/usecase/cart"
	checkoutuc "example.com/shop-checkout/app/internal/usecase/checkout"
	orderuc "example.com/shop-checkout/app/internal/usecase/order"
	paymentuc "example.com/shop-checkout/app/internal/usecase/payment"
)

func main() {
	port := getenv("APP_PORT", "8080")
	dsn := getenv("MYSQL_DSN", "user:pass@tcp(mysql:3306)/shopdb?parseTime=true")
	migrationsDir := getenv("MIGRATIONS_DIR", "migrations")
	jwtSecret := getenv("JWT_SECRET", "dev-secret-change-me")

	db, err := mysql.Open(dsn)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := mysql.RunMigrations(db, migrationsDir); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	cartRepo := mysql.NewCartRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	paymentRepo := mysql.NewPaymentRepository(db)

	api := apihttp.NewAPI(apihttp.Dependencies{
		CartService:     cartuc.NewService(cartRepo, productRepo),
		CheckoutService: checkoutuc.NewService(orderRepo),
		OrderService:    orderuc.NewService(orderRepo),
		PaymentService:  paymentuc.NewService(paymentRepo, orderRepo),
		TokenService:    security.NewJWTService(jwtSecret, 24*time.Hour),
		HTTPMetrics:     metrics.NewHTTPMetrics("checkout"),
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      api.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("listening on :%s ...", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
