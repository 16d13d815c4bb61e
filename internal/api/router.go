package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hxlane/rental_go_server/config"
	"github.com/hxlane/rental_go_server/internal/api/handler"
	"github.com/hxlane/rental_go_server/internal/api/middleware"
	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/repository"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	planHandler         *handler.PlanHandler
	subscriptionHandler *handler.SubscriptionHandler
	paymentHandler      *handler.PaymentHandler
	notificationHandler *handler.NotificationHandler
	messengerHandler    *handler.MessengerHandler
	userRepo            *repository.UserRepository
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	planHandler *handler.PlanHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	paymentHandler *handler.PaymentHandler,
	notificationHandler *handler.NotificationHandler,
	messengerHandler *handler.MessengerHandler,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		planHandler:         planHandler,
		subscriptionHandler: subscriptionHandler,
		paymentHandler:      paymentHandler,
		notificationHandler: notificationHandler,
		messengerHandler:    messengerHandler,
		userRepo:            userRepo,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 套餐展示
		api.GET("/plans", r.planHandler.ListPublic)

		// 公开接口 - Messenger webhook（平台回调，不走 JWT）
		webhooks := api.Group("/webhooks")
		{
			webhooks.GET("/messenger", r.messengerHandler.VerifyWebhook)
			webhooks.POST("/messenger", r.messengerHandler.ReceiveWebhook)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.POST("/messenger/link-code", r.messengerHandler.GenerateLinkCode)
			}

			// 通知流
			authenticated.GET("/notifications", r.notificationHandler.Feed)

			// 订阅
			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Subscribe)
				subscriptions.GET("", r.subscriptionHandler.ListMine)
				subscriptions.DELETE("/:id", r.subscriptionHandler.CancelPending)
				subscriptions.POST("/payments", r.subscriptionHandler.SubmitPayment)
			}

			// 管理端
			admin := authenticated.Group("/admin")
			admin.Use(middleware.RequireRole(r.userRepo, model.RoleAdmin))
			{
				admin.GET("/plans", r.planHandler.ListAll)
				admin.POST("/plans", r.planHandler.Create)
				admin.PUT("/plans/:id", r.planHandler.Update)
				admin.DELETE("/plans/:id", r.planHandler.Delete)

				admin.GET("/payments", r.paymentHandler.ListPending)
				admin.POST("/payments/:id/approve", r.paymentHandler.Approve)
				admin.POST("/payments/:id/reject", r.paymentHandler.Reject)
			}
		}
	}

	return engine
}
