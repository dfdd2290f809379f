package server

import (
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/auth"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/cache"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/config"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/metrics"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/moderation"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/pereval"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} ${method} ${path}\n",
	}))

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", metrics.Handler())

	passCache := cache.New(s.Redis, s.Cfg.CacheTTL())

	pereval.RegisterRoutes(s.App.Group("/submitData"), pereval.NewService(s.DB, passCache))
	moderation.RegisterRoutes(s.App.Group("/moderation"), moderation.NewService(s.DB, passCache),
		auth.JWTMiddleware(s.Cfg.JWTSecret), auth.RequireRole("moderator"))
}
