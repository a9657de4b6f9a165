package main

import (
    "log"
    "os"

    "github.com/joho/godotenv"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/ppdb_backend_v1/internal/config"
    "github.com/zaqqye/ppdb_backend_v1/internal/mailer"
    "github.com/zaqqye/ppdb_backend_v1/internal/middleware"
    "github.com/zaqqye/ppdb_backend_v1/internal/models"
    "github.com/zaqqye/ppdb_backend_v1/internal/routes"
    "github.com/zaqqye/ppdb_backend_v1/internal/store"
    "github.com/zaqqye/ppdb_backend_v1/internal/ws"
)

func main() {
    // Load .env (non-fatal if missing in production)
    _ = godotenv.Load()

    cfg := config.Load()

    st, err := store.Open(cfg.DataFile, models.Credential{
        Username: cfg.AdminUsername,
        Password: cfg.AdminPassword,
    })
    if err != nil {
        log.Fatalf("store open failed: %v", err)
    }

    hub := ws.NewEventHub()
    go hub.Run()

    m := mailer.New(cfg)
    if !m.Enabled() {
        log.Println("SMTP not configured; verification mail disabled")
    }

    r := gin.Default()
    r.Use(middleware.CORS())
    routes.Register(r, st, cfg, hub, m)

    port := cfg.Port
    if port == "" {
        port = "8080"
    }

    if err := r.Run(":" + port); err != nil {
        log.Println("server exited with error:", err)
        os.Exit(1)
    }
}
