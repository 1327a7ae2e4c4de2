package server

import (
	"context"
	"net/http"

	"github.com/castbooklabs/castbook/internal/config"
	pricingdomain "github.com/castbooklabs/castbook/internal/pricing/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	PricingSvc pricingdomain.Service
}

type Server struct {
	cfg        config.Config
	log        *zap.Logger
	pricingSvc pricingdomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		pricingSvc: p.PricingSvc,
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.POST("/talent-pricing", s.CreatePricing)
		api.PUT("/talent-pricing", s.UpdatePricing)
		api.GET("/talent-pricing/:talentId", s.GetPricing)
	}

	return router
}

func Register(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{Addr: s.cfg.HTTPAddr, Handler: s.Handler()}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(Register),
)
