package controllers_test

import (
    "net/http"
    "testing"
)

func TestAdminLoginSuccess(t *testing.T) {
    r, _ := newTestServer(t)
    token := adminToken(t, r)
    if token == "" {
        t.Fatal("Expected a session token")
    }
}

func TestAdminLoginWrongPassword(t *testing.T) {
    r, _ := newTestServer(t)

    w := doJSON(t, r, http.MethodPost, "/api/admin/login", map[string]string{
        "username": "admin",
        "password": "wrong",
    }, "")
    if w.Code != http.StatusUnauthorized {
        t.Fatalf("Expected 401, got %d", w.Code)
    }
    body := decodeBody(t, w)
    if body["success"] != false {
        t.Errorf("Expected success false, got %v", body)
    }
}

func TestAdminLoginWrongUsername(t *testing.T) {
    r, _ := newTestServer(t)

    w := doJSON(t, r, http.MethodPost, "/api/admin/login", map[string]string{
        "username": "root",
        "password": "admin66",
    }, "")
    if w.Code != http.StatusUnauthorized {
        t.Fatalf("Expected 401, got %d", w.Code)
    }
}

func TestAdminRoutesRequireToken(t *testing.T) {
    r, _ := newTestServer(t)

    paths := []struct {
        method string
        path   string
    }{
        {http.MethodGet, "/api/admin/students"},
        {http.MethodPost, "/api/admin/students"},
        {http.MethodGet, "/api/admin/students/some-id"},
        {http.MethodPut, "/api/admin/students/some-id"},
        {http.MethodDelete, "/api/admin/students/some-id"},
        {http.MethodGet, "/api/admin/stats"},
    }
    for _, route := range paths {
        w := doJSON(t, r, route.method, route.path, nil, "")
        if w.Code != http.StatusUnauthorized {
            t.Errorf("%s %s without token: expected 401, got %d", route.method, route.path, w.Code)
        }
    }

    w := doJSON(t, r, http.MethodGet, "/api/admin/students", nil, "not-a-jwt")
    if w.Code != http.StatusUnauthorized {
        t.Errorf("Garbage token: expected 401, got %d", w.Code)
    }
}
