// Package server exposes the catalog and the invoicing engine over HTTP.
// The wire format is XML, matching the collection files.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
	"github.com/smallbiznis/facturador/internal/config"
	invoicingdomain "github.com/smallbiznis/facturador/internal/invoicing/domain"
	obsmiddleware "github.com/smallbiznis/facturador/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/facturador/internal/observability/metrics"
	"github.com/smallbiznis/facturador/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, m *obsmetrics.Metrics) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	catalogSvc   catalogdomain.Service
	invoicingSvc invoicingdomain.Service
	pdfProvider  pdf.Provider
	metrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	CatalogSvc   catalogdomain.Service
	InvoicingSvc invoicingdomain.Service
	PDFProvider  pdf.Provider
	Metrics      *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("http.server"),
		catalogSvc:   p.CatalogSvc,
		invoicingSvc: p.InvoicingSvc,
		pdfProvider:  p.PDFProvider,
		metrics:      p.Metrics,
	}
}

func (s *Server) RegisterRoutes() {
	r := s.engine

	r.GET("/", s.Index)
	r.GET("/consultarDatos", s.ConsultarDatos)

	r.POST("/crearRecurso", s.CrearRecurso)
	r.POST("/crearCategoria", s.CrearCategoria)
	r.POST("/crearCliente", s.CrearCliente)
	r.POST("/crearInstancia", s.CrearInstancia)
	r.POST("/crearConfiguracion", s.CrearConfiguracion)
	r.POST("/cargarConsumos", s.CargarConsumos)

	r.POST("/generarFactura", s.GenerarFactura)
	r.GET("/facturas/:id/pdf", s.FacturaPDF)

	r.POST("/reiniciarSistema", s.ReiniciarSistema)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
