package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/template/html/v2"
	"github.com/gofiber/utils"
	"gorm.io/gorm"

	"pustaka_backend/internals/configs"
	database "pustaka_backend/internals/databases"
	helper "pustaka_backend/internals/helpers"
	middlewares "pustaka_backend/internals/middlewares"
	authMw "pustaka_backend/internals/middlewares/auth"
	routes "pustaka_backend/internals/route"
	seeds "pustaka_backend/internals/seeds"
)

func newApp(db *gorm.DB) *fiber.App {
	engine := html.New("./views", ".html")
	engine.AddFunc("fdate", func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("02 Jan 2006")
	})
	engine.AddFunc("add", func(a, b int) int { return a + b })

	app := fiber.New(fiber.Config{
		Views: engine,
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return helper.RenderError(c, code, err.Error())
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)
	app.Use(middlewares.DBMiddleware(db))
	app.Use(authMw.LoadUser())

	// 📁 sampul buku hasil upload
	app.Static("/uploads", configs.UploadDir)

	// ❤️ Health check (anti-cold start, sekalian cek DB siap)
	app.Get("/health", func(c *fiber.Ctx) error {
		conn, ok := c.Locals("db").(*gorm.DB)
		if !ok {
			return fiber.NewError(fiber.StatusServiceUnavailable, "koneksi DB belum terpasang")
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "koneksi DB belum terpasang")
		}
		if err := sqlDB.PingContext(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database tidak siap")
		}
		return c.SendString("ok")
	})

	// ✅ Routes
	routes.SetupRoutes(app, db)

	return app
}

func main() {
	configs.LoadEnv()

	runMigrate := flag.Bool("migrate", false, "jalankan AutoMigrate sebelum start")
	runSeed := flag.Bool("seed", false, "isi data contoh katalog")
	flag.Parse()

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if *runMigrate {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("❌ Migrasi gagal: %v", err)
		}
	}
	if *runSeed {
		seeds.RunAllSeeds(database.DB)
	}

	app := newApp(database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
