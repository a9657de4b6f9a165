package mailer

import (
    "fmt"
    "log"
    "strconv"

    "gopkg.in/gomail.v2"

    "github.com/zaqqye/ppdb_backend_v1/internal/config"
    "github.com/zaqqye/ppdb_backend_v1/internal/models"
)

// Mailer delivers verification mail over SMTP. Delivery is best-effort:
// callers dispatch SendVerification on a goroutine and the request path
// never waits on or observes the outcome.
type Mailer struct {
    host     string
    port     int
    username string
    password string
    from     string
    baseURL  string
}

func New(cfg *config.Config) *Mailer {
    port, err := strconv.Atoi(cfg.SMTPPort)
    if err != nil || port <= 0 {
        port = 587
    }
    from := cfg.SMTPFrom
    if from == "" {
        from = cfg.SMTPUser
    }
    return &Mailer{
        host:     cfg.SMTPHost,
        port:     port,
        username: cfg.SMTPUser,
        password: cfg.SMTPPassword,
        from:     from,
        baseURL:  cfg.BaseURL,
    }
}

func (m *Mailer) Enabled() bool {
    return m != nil && m.host != ""
}

// SendVerification mails the applicant their registration summary and
// verification link. Failures are logged, never surfaced.
func (m *Mailer) SendVerification(st models.Student) {
    if !m.Enabled() {
        log.Printf("mailer: SMTP not configured, skipping verification mail for %s", st.Email)
        return
    }

    verifyLink := fmt.Sprintf("%s/verifikasi.html?token=%s", m.baseURL, st.VerificationToken)

    msg := gomail.NewMessage()
    msg.SetHeader("From", m.from)
    msg.SetHeader("To", st.Email)
    msg.SetHeader("Subject", "Verifikasi Email - Pendaftaran Sekolah")
    msg.SetBody("text/html", verificationBody(st, verifyLink))

    dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
    if err := dialer.DialAndSend(msg); err != nil {
        log.Printf("mailer: gagal kirim email ke %s: %v", st.Email, err)
        return
    }
    log.Printf("mailer: email terkirim ke %s", st.Email)
}

func verificationBody(st models.Student, verifyLink string) string {
    return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
            <h2 style="color: #1e3a8a;">Verifikasi Email Pendaftaran</h2>
            <p>Halo %s,</p>
            <p>Terima kasih telah mendaftar di sekolah kami. Berikut adalah detail pendaftaran Anda:</p>
            <div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
                <p><strong>Nomor Pendaftaran:</strong> %s</p>
                <p><strong>Nama:</strong> %s</p>
                <p><strong>Email:</strong> %s</p>
            </div>
            <p>Silakan klik tombol di bawah untuk memverifikasi email Anda:</p>
            <a href="%s" style="display: inline-block; background-color: #1e3a8a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; margin: 10px 0;">Verifikasi Email</a>
            <p>Atau copy tautan ini: <br>%s</p>
            <p style="color: #6b7280; font-size: 12px; margin-top: 20px;">
                Jika Anda tidak mendaftar di sekolah ini, abaikan email ini.
            </p>
        </div>`,
        st.FullName, st.RegistrationNumber, st.FullName, st.Email, verifyLink, verifyLink)
}
