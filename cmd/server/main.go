package main

import (
	"log"
	"net/http"

	"sushi-be/internal/category"
	"sushi-be/internal/config"
	"sushi-be/internal/db"
	"sushi-be/internal/logger"
	"sushi-be/internal/notify"
	"sushi-be/internal/order"
	"sushi-be/internal/product"
	"sushi-be/internal/transport"
	"sushi-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	notifier := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, notifier)

	router := transport.NewRouter(transport.Services{
		Users:      userSvc,
		UserRepo:   userRepo,
		Categories: categorySvc,
		Products:   productSvc,
		Orders:     orderSvc,
	})

	log.Printf("🍣 Storefront API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
