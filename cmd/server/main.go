package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-backoffice/internal/config"
    "github.com/iliyamo/hotel-backoffice/internal/database"
    "github.com/iliyamo/hotel-backoffice/internal/handler"
    "github.com/iliyamo/hotel-backoffice/internal/middleware"
    "github.com/iliyamo/hotel-backoffice/internal/queue"
    "github.com/iliyamo/hotel-backoffice/internal/repository"
    "github.com/iliyamo/hotel-backoffice/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis is optional: a nil client disables caching and rate limiting.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable, response cache and rate limiter disabled")
    }
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    reservations := repository.NewReservationRepo(db)
    rooms := repository.NewRoomRepo(db)
    floors := repository.NewFloorRepo(db)
    dests := repository.NewDestinationRepo(db)
    props := repository.NewPropertyRepo(db)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    resH := handler.NewReservationHandler(reservations, rooms, floors)
    statusH := handler.NewReservationStatusHandler(reservations, rooms, floors)
    roomH := handler.NewRoomHandler(rooms, floors)
    floorH := handler.NewFloorHandler(floors)
    destH := handler.NewDestinationHandler(dests)
    propH := handler.NewPropertyHandler(props)

    e := echo.New()
    e.HideBanner = true
    router.RegisterRoutes(e, db)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterReservations(e, resH, statusH, cfg.JWTSecret, cacheMW, rateMW)
    router.RegisterCatalog(e, roomH, floorH, destH, propH, cfg.JWTSecret, cacheMW, rateMW)

    // background consumer appends status-change events to logs/reservations.log
    go func() {
        if err := queue.StartStatusConsumer(); err != nil {
            log.Printf("status consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
