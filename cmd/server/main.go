package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/config"
	"github.com/iliyamo/movie-ticket-booking/internal/database"
	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	sessions := repository.NewSessionRepo(db)
	tickets := repository.NewTicketRepo(db)

	engine := booking.New(cfg.Location)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	movieH := handler.NewMovieHandler(movies, sessions)
	ticketH := handler.NewTicketHandler(engine, tickets, sessions, movies, users)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Rate limiting and the response cache ride on Redis; when Redis is
	// unreachable the API still serves, just without them.
	var public []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		public = append(public,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		)
	} else {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, movieH, public...)
	router.RegisterManager(e, movieH, cfg.JWTSecret)
	router.RegisterCustomer(e, ticketH, cfg.JWTSecret)

	// Audit consumer for ticket lifecycle events.  It reconnects on its
	// own and must not block startup.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.Location)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
