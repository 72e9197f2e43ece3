package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"rental-dashboard-backend/config"
	"rental-dashboard-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg config.ServerConfig, handler *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// List snapshots go stale within seconds anyway, so the response
	// cache stays very short.
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 10*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/login", handler.Login)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(handler.RequireAuth())
		{
			authed.POST("/auth/logout", handler.Logout)
			authed.GET("/auth/me", handler.Me)

			authed.GET("/admin", handler.ListAdmin)
			authed.POST("/admin", handler.CreateAdmin)
			authed.PUT("/admin/:id", handler.UpdateAdmin)
			authed.DELETE("/admin/:id", handler.DeleteAdmin)

			authed.GET("/jenis-motor", caching, handler.ListJenisMotor)
			authed.GET("/jenis-motor/slug/:slug", handler.JenisMotorDetailBySlug)
			authed.GET("/jenis-motor/:id", handler.JenisMotorDetail)
			authed.POST("/jenis-motor", handler.CreateJenisMotor)
			authed.PATCH("/jenis-motor/:id", handler.UpdateJenisMotor)
			authed.DELETE("/jenis-motor/:id", handler.DeleteJenisMotor)

			authed.GET("/unit-motor", caching, handler.ListUnitMotor)
			authed.GET("/unit-motor/:id", handler.UnitMotorDetail)
			authed.POST("/unit-motor", handler.CreateUnitMotor)
			authed.PATCH("/unit-motor/:id", handler.UpdateUnitMotor)
			authed.DELETE("/unit-motor/:id", handler.DeleteUnitMotor)

			authed.GET("/transaksi", caching, handler.ListTransaksi)
			authed.GET("/transaksi/laporan/denda", handler.LaporanDenda)
			authed.GET("/transaksi/laporan/fasilitas", handler.LaporanFasilitas)
			authed.GET("/transaksi/:id", handler.TransaksiDetail)
			authed.POST("/transaksi", handler.CreateTransaksi)
			authed.POST("/transaksi/:id/selesai", handler.SelesaikanTransaksi)

			authed.GET("/blog", caching, handler.ListBlog)
			authed.GET("/blog/by-slug/:slug", handler.BlogDetailBySlug)
			authed.GET("/blog/:id", handler.BlogDetail)
			authed.POST("/blog", handler.CreateBlog)
			authed.PATCH("/blog/:id", handler.UpdateBlog)
			authed.DELETE("/blog/:id", handler.DeleteBlog)

			authed.GET("/whatsapp/status", handler.WhatsAppStatus)
			authed.GET("/whatsapp/qr", handler.WhatsAppQR)
			authed.POST("/whatsapp/refresh", handler.WhatsAppRefresh)
			authed.POST("/whatsapp/logout", handler.WhatsAppLogout)
			authed.POST("/whatsapp/start-all", handler.WhatsAppStartAll)
			authed.GET("/whatsapp/session-status", handler.WhatsAppSessionStatus)
			authed.GET("/whatsapp/sessions", handler.WhatsAppSessions)
			authed.GET("/whatsapp/chats", handler.WhatsAppChats)
			authed.GET("/whatsapp/messages/:phone", handler.WhatsAppMessages)
			authed.GET("/whatsapp/contact/:phone", handler.WhatsAppContact)
			authed.POST("/whatsapp/send", handler.WhatsAppSend)
			authed.POST("/whatsapp/send-admin", handler.WhatsAppSendAdmin)

			authed.GET("/subscriptions", handler.GetSubscription)
			authed.PUT("/subscriptions", handler.PutSubscription)
			authed.DELETE("/subscriptions", handler.DeleteSubscription)
		}
	}

	return r
}
