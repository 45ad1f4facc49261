package app

import (
	"github.com/gin-gonic/gin"
	handlers "github.com/mrmateussiilva/petstory/internal/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) RegisterRoutes(payments *handlers.PaymentHandler, orders *handlers.OrderHandler, limiter *handlers.ClientRateLimiter) {
	a.Router.GET("/health", handlers.Health)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Gateway notifications are not limited per client IP.
	a.Router.POST("/api/payment/webhook", payments.Webhook)

	api := a.Router.Group("/api", limiter.Middleware())

	payment := api.Group("/payment")
	payment.POST("/create", payments.CreatePayment)
	payment.GET("/success", payments.Success)
	payment.GET("/failure", payments.Failure)
	payment.GET("/pending", payments.Pending)

	api.POST("/upload", orders.Upload)
	api.GET("/orders/:id", orders.GetOrder)
}
