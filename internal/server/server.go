package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/opencampus/opencampus/internal/account/domain"
	"github.com/opencampus/opencampus/internal/clock"
	"github.com/opencampus/opencampus/internal/config"
	coursedomain "github.com/opencampus/opencampus/internal/course/domain"
	enrollmentdomain "github.com/opencampus/opencampus/internal/enrollment/domain"
	"github.com/opencampus/opencampus/internal/gateway"
	obslogger "github.com/opencampus/opencampus/internal/observability/logger"
	obsmetrics "github.com/opencampus/opencampus/internal/observability/metrics"
	obstracing "github.com/opencampus/opencampus/internal/observability/tracing"
	progressdomain "github.com/opencampus/opencampus/internal/progress/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type EngineParams struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	HTTPMetrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewEngine(p EngineParams) *gin.Engine {
	if p.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(p.Log, obslogger.MiddlewareConfig{
		Debug:           !p.Cfg.IsProduction(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(p.HTTPMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(p EngineParams) *gin.Engine {
	return NewEngine(p)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	clock         clock.Clock
	accountSvc    accountdomain.Service
	courseSvc     coursedomain.Service
	enrollmentSvc enrollmentdomain.Service
	progressSvc   progressdomain.Service
	verifier      *gateway.SignatureVerifier
	log           *zap.Logger
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	Clock         clock.Clock
	Log           *zap.Logger
	AccountSvc    accountdomain.Service
	CourseSvc     coursedomain.Service
	EnrollmentSvc enrollmentdomain.Service
	ProgressSvc   progressdomain.Service
	Verifier      *gateway.SignatureVerifier
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		clock:         p.Clock,
		accountSvc:    p.AccountSvc,
		courseSvc:     p.CourseSvc,
		enrollmentSvc: p.EnrollmentSvc,
		progressSvc:   p.ProgressSvc,
		verifier:      p.Verifier,
		log:           p.Log.Named("http.server"),
	}

	s.registerAPIRoutes()
	s.registerWebhookRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/accounts", s.Register)
	v1.GET("/courses", s.ListCourses)
	v1.GET("/courses/:courseId", s.GetCourse)

	me := v1.Group("", s.IdentityRequired())
	{
		me.GET("/me", s.Me)
		me.PATCH("/me", s.UpdateMe)
		me.POST("/accounts/:accountId/suspend", s.SuspendAccount)

		me.POST("/enrollments", s.InitiateEnrollment)
		me.POST("/enrollments/verify", s.VerifyEnrollment)
		me.POST("/enrollments/payment-failed", s.AbandonEnrollment)
		me.GET("/enrollments/my-courses", s.MyCourses)

		me.PUT("/progress", s.UpdateProgress)
		me.GET("/progress/:courseId", s.GetProgress)
	}
}

func (s *Server) registerWebhookRoutes() {
	s.engine.POST("/v1/webhooks/razorpay", s.HandleRazorpayWebhook)
}
