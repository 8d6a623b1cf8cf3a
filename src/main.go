package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"syscall"
	"time"

	"villas/src/booking"
	"villas/src/boot"
	"villas/src/catalog"
	"villas/src/common"
	"villas/src/config"
	"villas/src/middlewares"
	"villas/src/payments"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apiPrefix string = "/api"
)

type services struct {
	catalog  *catalog.Catalog
	bookings *booking.Manager
	payments *payments.Engine
	contact  *common.ContactService
}

var isoDate validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.DATE_FORMAT, date)
	return err == nil
}

var gtdate validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	datetime, err := time.Parse(config.DATE_FORMAT, date)
	if !ok || err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	fieldValue, ok := field.Interface().(string)
	if !ok {
		return false
	}
	fielddatetime, err := time.Parse(config.DATE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	return datetime.After(fielddatetime)
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("isodate", isoDate)
		v.RegisterValidation("gtdate", gtdate)
	}
}

func setupRouter(cfg *config.Config, svc *services) *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.Use(corsMiddleware(cfg))
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router = maintenanceModeMiddleware(router)

	apiGroup(router).GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Apollo's Hideaway API"})
	})
	villaRoutes(router, svc.catalog)
	bookingRoutes(router, svc.bookings)
	paymentRoutes(router, svc.payments)
	stripeWebhookRoute(router, svc.payments)
	contactRoutes(router, svc.contact)
	return router
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if len(cfg.CorsOrigins) == 0 || (len(cfg.CorsOrigins) == 1 && cfg.CorsOrigins[0] == "*") {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowOrigins = cfg.CorsOrigins
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	cc.AllowCredentials = true
	return cors.New(cc)
}

// maintenanceModeMiddleware answers 503 on every request registered after it while MAINTENANCE_MODE is true.
func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm, err := strconv.ParseBool(os.Getenv("MAINTENANCE_MODE"))
		if err == nil && mm {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

func apiGroup(g *gin.Engine) *gin.RouterGroup {
	return g.Group(apiPrefix)
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	gin.DefaultWriter = io.MultiWriter(&lumberjack.Logger{
		Filename:   apiLogs,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}, os.Stdout)
	log.SetOutput(io.MultiWriter(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}, os.Stderr))
}

func main() {
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("No .env file loaded: %s\n", err.Error())
		}
	}
	initLogger()
	cfg := config.Load()
	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, closeStore, err := boot.InitStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %s", err)
	}
	defer closeStore()

	villas := catalog.New(s)
	boot.SeedCatalog(ctx, villas)

	sink := boot.InitNotifier(cfg)
	engine := payments.NewEngine(s, boot.InitProvider(cfg), sink, payments.Options{
		ProviderTimeout: cfg.ProviderTimeout,
		StaleAfter:      cfg.SweepMinAge,
		From:            cfg.SMTPFrom,
	})
	svc := &services{
		catalog:  villas,
		bookings: booking.NewManager(s, boot.InitLocker(cfg)),
		payments: engine,
		contact:  common.NewContactService(s, sink, cfg.SMTPFrom, cfg.ContactEmail),
	}

	sched, err := boot.InitScheduler(cfg, engine)
	if err != nil {
		log.Printf("Stale payment sweep disabled: %s\n", err.Error())
	}
	defer boot.StopScheduler(sched)

	registerValidators()
	router := setupRouter(cfg, svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Printf("Listening on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %s", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %s\n", err.Error())
	}
	sink.Wait()
}
