package routes

import (
    "time"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/ppdb_backend_v1/internal/config"
    "github.com/zaqqye/ppdb_backend_v1/internal/controllers"
    "github.com/zaqqye/ppdb_backend_v1/internal/mailer"
    "github.com/zaqqye/ppdb_backend_v1/internal/middleware"
    "github.com/zaqqye/ppdb_backend_v1/internal/store"
    "github.com/zaqqye/ppdb_backend_v1/internal/ws"
)

func Register(r *gin.Engine, st *store.Store, cfg *config.Config, hub *ws.EventHub, m *mailer.Mailer) {
    expiresMins, err := time.ParseDuration(cfg.JWTExpiresIn + "m")
    if err != nil || expiresMins == 0 {
        expiresMins = 60 * time.Minute
    }

    regCtrl := &controllers.RegistrationController{Store: st, Mailer: m, Hub: hub}
    authCtrl := &controllers.AuthController{Store: st, JWTSecret: cfg.JWTSecret, ExpiresIn: expiresMins}
    studentCtrl := &controllers.StudentController{Store: st, Hub: hub}
    statsCtrl := &controllers.StatsController{Store: st}

    api := r.Group("/api")

    // Public
    api.POST("/register", regCtrl.Register)
    api.GET("/verify/:token", regCtrl.Verify)
    api.GET("/status", regCtrl.Status)
    api.POST("/admin/login", authCtrl.Login)

    // Admin-only
    admin := api.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret))
    {
        admin.GET("/students", studentCtrl.List)
        admin.POST("/students", studentCtrl.Create)
        admin.POST("/students/import", studentCtrl.Import)
        admin.GET("/students/:id", studentCtrl.Get)
        admin.PUT("/students/:id", studentCtrl.Update)
        admin.DELETE("/students/:id", studentCtrl.Delete)
        admin.GET("/stats", statsCtrl.Get)
    }

    // Dashboard event feed; token arrives as a query parameter, so it
    // skips the header middleware and validates inside the handler.
    api.GET("/admin/events", ws.EventsHandler(cfg.JWTSecret, hub))
}
