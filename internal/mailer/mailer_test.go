package mailer

import (
    "strings"
    "testing"

    "github.com/zaqqye/ppdb_backend_v1/internal/config"
    "github.com/zaqqye/ppdb_backend_v1/internal/models"
)

func TestMailerDisabledWithoutHost(t *testing.T) {
    m := New(&config.Config{SMTPPort: "587"})
    if m.Enabled() {
        t.Error("Mailer must be disabled when SMTP_HOST is empty")
    }
    // Must not panic or block; delivery is skipped with a log line.
    m.SendVerification(models.Student{Email: "a@x.com"})
}

func TestNewDefaultsPortAndFrom(t *testing.T) {
    m := New(&config.Config{
        SMTPHost: "smtp.example.com",
        SMTPPort: "bogus",
        SMTPUser: "mailer@example.com",
    })
    if m.port != 587 {
        t.Errorf("Expected fallback port 587, got %d", m.port)
    }
    if m.from != "mailer@example.com" {
        t.Errorf("Expected from to fall back to SMTP user, got %q", m.from)
    }
    if !m.Enabled() {
        t.Error("Mailer should be enabled with a host set")
    }
}

func TestVerificationBodyCarriesLinkAndDetails(t *testing.T) {
    st := models.Student{
        FullName:           "Ahmad Fauzi",
        Email:              "a@x.com",
        RegistrationNumber: "REG-2024-1234",
    }
    link := "http://localhost:8080/verifikasi.html?token=tok-123"
    body := verificationBody(st, link)

    for _, want := range []string{"Ahmad Fauzi", "a@x.com", "REG-2024-1234", link} {
        if !strings.Contains(body, want) {
            t.Errorf("Mail body missing %q", want)
        }
    }
}
