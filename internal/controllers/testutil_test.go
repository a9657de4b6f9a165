package controllers_test

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "path/filepath"
    "testing"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/ppdb_backend_v1/internal/config"
    "github.com/zaqqye/ppdb_backend_v1/internal/mailer"
    "github.com/zaqqye/ppdb_backend_v1/internal/models"
    "github.com/zaqqye/ppdb_backend_v1/internal/routes"
    "github.com/zaqqye/ppdb_backend_v1/internal/store"
    "github.com/zaqqye/ppdb_backend_v1/internal/ws"
)

// newTestServer wires the full route table against a temp-dir store.
// SMTP stays unconfigured, so the mailer only logs.
func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
    t.Helper()
    gin.SetMode(gin.TestMode)

    cfg := &config.Config{
        DataFile:      filepath.Join(t.TempDir(), "data.json"),
        BaseURL:       "http://localhost:8080",
        JWTSecret:     "test-secret",
        JWTExpiresIn:  "60",
        AdminUsername: "admin",
        AdminPassword: "admin66",
        SMTPPort:      "587",
    }

    st, err := store.Open(cfg.DataFile, models.Credential{
        Username: cfg.AdminUsername,
        Password: cfg.AdminPassword,
    })
    if err != nil {
        t.Fatalf("Failed to open store: %v", err)
    }

    hub := ws.NewEventHub()
    go hub.Run()

    r := gin.New()
    routes.Register(r, st, cfg, hub, mailer.New(cfg))
    return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
    t.Helper()
    var reader *bytes.Reader
    if body != nil {
        data, err := json.Marshal(body)
        if err != nil {
            t.Fatalf("Failed to marshal request body: %v", err)
        }
        reader = bytes.NewReader(data)
    } else {
        reader = bytes.NewReader(nil)
    }
    req := httptest.NewRequest(method, path, reader)
    req.Header.Set("Content-Type", "application/json")
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)
    return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var body map[string]any
    if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
        t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
    }
    return body
}

func adminToken(t *testing.T, r *gin.Engine) string {
    t.Helper()
    w := doJSON(t, r, http.MethodPost, "/api/admin/login", map[string]string{
        "username": "admin",
        "password": "admin66",
    }, "")
    if w.Code != http.StatusOK {
        t.Fatalf("Login failed with status %d: %s", w.Code, w.Body.String())
    }
    body := decodeBody(t, w)
    token, _ := body["token"].(string)
    if token == "" {
        t.Fatal("Login response carried no token")
    }
    return token
}

func registerApplicant(t *testing.T, r *gin.Engine, email string) map[string]any {
    t.Helper()
    w := doJSON(t, r, http.MethodPost, "/api/register", map[string]string{
        "fullName":   "Ahmad Fauzi",
        "email":      email,
        "fatherName": "Budi",
        "motherName": "Siti",
        "program":    "Tahfidz",
    }, "")
    if w.Code != http.StatusOK {
        t.Fatalf("Registration failed with status %d: %s", w.Code, w.Body.String())
    }
    return decodeBody(t, w)
}
