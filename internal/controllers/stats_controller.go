package controllers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/ppdb_backend_v1/internal/store"
)

type StatsController struct {
    Store *store.Store
}

// Get aggregates the full applicant collection for the dashboard cards.
func (sc *StatsController) Get(c *gin.Context) {
    stats, err := sc.Store.Stats()
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }
    c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
