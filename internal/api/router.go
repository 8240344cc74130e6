package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/accident-dashboard/internal/config"
	"github.com/jengzang/accident-dashboard/internal/handler"
	"github.com/jengzang/accident-dashboard/internal/middleware"
	"github.com/jengzang/accident-dashboard/internal/service"
	"github.com/jengzang/accident-dashboard/internal/web"
	"go.uber.org/zap"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc *service.DashboardService, logger *zap.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.Logger(logger), gin.Recovery())

	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		r.Use(middleware.RateLimit(limiter, logger))
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	h := handler.NewDashboardHandler(svc, cfg)

	r.GET("/", h.Index)

	dash := r.Group("/dash")
	{
		dash.GET("/", h.Dashboard)
		dash.GET("/api/records", h.Records)
		dash.GET("/api/counts", h.Counts)
		dash.GET("/charts/:name", h.Chart)
		dash.StaticFS("/assets", web.Assets())
	}

	return r, nil
}
