package main

import (
	"fmt"
	"log"

	"github.com/hxlane/rental_go_server/config"
	"github.com/hxlane/rental_go_server/internal/api"
	"github.com/hxlane/rental_go_server/internal/api/handler"
	"github.com/hxlane/rental_go_server/internal/database"
	"github.com/hxlane/rental_go_server/internal/notify"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/pkg/queue"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化通知队列与事件入口
	notifQueue := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)
	emitter := notify.NewEmitter(notifQueue)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	payRepo := repository.NewSubscriptionPaymentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// 初始化 Service
	planService := service.NewPlanService(planRepo)
	subService := service.NewSubscriptionService(subRepo, planRepo, planService)
	authService := service.NewAuthService(userRepo, subService, cfg)
	userService := service.NewUserService(userRepo)
	payService := service.NewPaymentReviewService(payRepo, subService, emitter)
	notifService := service.NewNotificationService(notifRepo)
	messengerSender := channel.NewMessengerSender(&cfg.Messenger)
	linkService := service.NewMessengerLinkService(rdb, userRepo, messengerSender, cfg.Notify.LinkCodeTTL())

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	planHandler := handler.NewPlanHandler(planService)
	subscriptionHandler := handler.NewSubscriptionHandler(subService, payService)
	paymentHandler := handler.NewPaymentHandler(payService)
	notificationHandler := handler.NewNotificationHandler(notifService)
	messengerHandler := handler.NewMessengerHandler(linkService, cfg)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		planHandler,
		subscriptionHandler,
		paymentHandler,
		notificationHandler,
		messengerHandler,
		userRepo,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
