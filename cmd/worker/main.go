package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hxlane/rental_go_server/config"
	"github.com/hxlane/rental_go_server/internal/database"
	"github.com/hxlane/rental_go_server/internal/notify"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/pkg/queue"
	"github.com/hxlane/rental_go_server/internal/pkg/suppress"
	"github.com/hxlane/rental_go_server/internal/repository"
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

	// 初始化通知队列
	notifQueue := queue.NewQueue(rdb, cfg.Queue.NotificationQueue)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// 渠道发送器
	senders := map[channel.Channel]channel.Sender{
		channel.Email:     channel.NewEmailSender(&cfg.Email),
		channel.Telegram:  channel.NewTelegramSender(&cfg.Telegram),
		channel.Messenger: channel.NewMessengerSender(&cfg.Messenger),
	}

	// 投递器
	entitlements := notify.NewEntitlements(userRepo, subRepo, planRepo)
	suppressor := suppress.NewStore(rdb)
	dispatcher := notify.NewDispatcher(
		userRepo,
		notifRepo,
		entitlements,
		suppressor,
		senders,
		cfg.Notify.SuppressTTL(),
		cfg.Notify.SendTimeout(),
	)

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Notification worker started, max workers: %d", cfg.Queue.MaxWorkers)

	// 启动 worker 循环
	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					evt, err := notifQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop event: %v", workerID, err)
						continue
					}

					if evt == nil {
						continue // 超时，继续等待
					}

					log.Printf("Worker %d: dispatching notification for user %d", workerID, evt.UserID)
					dispatcher.Dispatch(ctx, evt)
				}
			}
		}(i)
	}

	// 等待 context 取消
	<-ctx.Done()
	log.Println("Worker shutdown complete")
}
