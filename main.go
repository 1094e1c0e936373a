package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"attendance-backend/internal/attendance"
	"attendance-backend/internal/employee"
	"attendance-backend/internal/notify"
	"attendance-backend/internal/platform/auth"
	"attendance-backend/internal/platform/db"
	"attendance-backend/internal/settings"
	"attendance-backend/internal/worklocation"
)

func main() {
	// .env は任意（CONFIG_PATH 等の上書き用）
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := db.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}

	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret is required in config")
	}
	secret := []byte(cfg.Auth.JWTSecret)

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)
	log.Printf("[INFO] site timezone: %s", cfg.Timezone)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// サービス組み立て
	settingsSvc := settings.NewService(conn)
	locationSvc := worklocation.NewService(conn)
	employeeSvc := employee.NewService(conn)
	notifier := notify.New(cfg.Notifier)
	attendanceSvc := attendance.NewService(conn, employeeSvc, locationSvc, settingsSvc, notifier, cfg.Location())

	// キオスク向け（認証なし）
	api := r.Group("/api")
	attendance.RegisterRoutes(api, attendanceSvc)

	// 管理コンソール向け
	adminAPI := r.Group("/api/admin")
	auth.RegisterRoutes(adminAPI, auth.NewService(conn, secret), secret)

	protected := adminAPI.Group("", auth.RequireAuth(secret),
		auth.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager))
	employee.RegisterRoutes(protected, employeeSvc)
	worklocation.RegisterRoutes(protected, locationSvc)
	settings.RegisterRoutes(protected, settingsSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on http://0.0.0.0:%d", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
