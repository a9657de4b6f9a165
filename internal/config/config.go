package config

import (
    "os"
)

type Config struct {
    Port         string
    DataFile     string
    BaseURL      string // public site base; embedded in verification links
    JWTSecret    string
    JWTExpiresIn string // minutes

    AdminUsername string
    AdminPassword string

    // SMTP settings; empty host disables outbound mail
    SMTPHost     string
    SMTPPort     string
    SMTPUser     string
    SMTPPassword string
    SMTPFrom     string
}

func Load() *Config {
    return &Config{
        Port:         getenv("PORT", "8080"),
        DataFile:     getenv("DATA_FILE", "data.json"),
        BaseURL:      getenv("BASE_URL", "http://localhost:8080"),
        JWTSecret:    getenv("JWT_SECRET", "supersecret_change_me"),
        JWTExpiresIn: getenv("JWT_EXPIRES_IN", "60"),

        AdminUsername: getenv("ADMIN_USERNAME", "admin"),
        AdminPassword: getenv("ADMIN_PASSWORD", "admin66"),

        SMTPHost:     getenv("SMTP_HOST", ""),
        SMTPPort:     getenv("SMTP_PORT", "587"),
        SMTPUser:     getenv("SMTP_USER", ""),
        SMTPPassword: getenv("SMTP_PASSWORD", ""),
        SMTPFrom:     getenv("SMTP_FROM", ""),
    }
}

func getenv(key, fallback string) string {
    v := os.Getenv(key)
    if v == "" {
        return fallback
    }
    return v
}
