package controllers

import (
    "net/http"
    "time"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/ppdb_backend_v1/internal/middleware"
    "github.com/zaqqye/ppdb_backend_v1/internal/store"
    "github.com/zaqqye/ppdb_backend_v1/internal/utils"
)

type AuthController struct {
    Store     *store.Store
    JWTSecret string
    ExpiresIn time.Duration
}

type loginRequest struct {
    Username string `json:"username" binding:"required"`
    Password string `json:"password" binding:"required"`
}

// Login checks the submitted pair against the store's singleton admin
// credential and issues a short-lived session token.
func (a *AuthController) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username dan password wajib diisi"})
        return
    }

    admin, err := a.Store.Admin()
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    if req.Username != admin.Username || !utils.CheckPassword(admin.Password, req.Password) {
        c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Username atau password salah"})
        return
    }

    token, err := middleware.IssueToken(a.JWTSecret, admin.Username, a.ExpiresIn)
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "success": true,
        "message": "Login berhasil",
        "token":   token,
    })
}
