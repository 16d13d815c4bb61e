package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hxlane/rental_go_server/config"
	"github.com/hxlane/rental_go_server/internal/database"
	"github.com/hxlane/rental_go_server/internal/notify"
	"github.com/hxlane/rental_go_server/internal/pkg/queue"
	"github.com/hxlane/rental_go_server/internal/pkg/suppress"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/scheduler"
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

	// 通知事件入口（经队列由 worker 投递）
	notifQueue := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)
	emitter := notify.NewEmitter(notifQueue)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)

	suppressor := suppress.NewStore(rdb)

	// 定时任务
	leaseJob := scheduler.NewLeaseExpiryJob(leaseRepo, userRepo, suppressor, emitter)
	subJob := scheduler.NewSubscriptionExpiryJob(subRepo, userRepo, suppressor, emitter)
	rentJob := scheduler.NewRentDueJob(leaseRepo, userRepo, suppressor, emitter)

	svc := scheduler.NewService(leaseJob, subJob, rentJob)
	svc.Start()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	svc.Stop()
	log.Println("Scheduler shutdown complete")
}
