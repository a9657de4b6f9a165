package controllers

import (
    "errors"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"

    "github.com/zaqqye/ppdb_backend_v1/internal/mailer"
    "github.com/zaqqye/ppdb_backend_v1/internal/models"
    "github.com/zaqqye/ppdb_backend_v1/internal/store"
    "github.com/zaqqye/ppdb_backend_v1/internal/ws"
)

type RegistrationController struct {
    Store  *store.Store
    Mailer *mailer.Mailer
    Hub    *ws.EventHub
}

type registerRequest struct {
    FullName       string `json:"fullName"`
    PlaceOfBirth   string `json:"placeOfBirth"`
    DateOfBirth    string `json:"dateOfBirth"`
    Gender         string `json:"gender"`
    NISN           string `json:"nisn"`
    Address        string `json:"address"`
    Phone          string `json:"phone"`
    FatherName     string `json:"fatherName"`
    FatherJob      string `json:"fatherJob"`
    MotherName     string `json:"motherName"`
    MotherJob      string `json:"motherJob"`
    ParentPhone    string `json:"parentPhone"`
    Email          string `json:"email"`
    PreviousSchool string `json:"previousSchool"`
    SchoolAddress  string `json:"schoolAddress"`
    Program        string `json:"program"`
    AverageGrade   string `json:"averageGrade"`
    Hafalan        string `json:"hafalan"`
    Activity       string `json:"activity"`
    Motivation     string `json:"motivation"`
}

// Register handles the public registration form. On success the
// verification mail goes out on a goroutine; the response never waits
// on delivery.
func (rc *RegistrationController) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Permintaan tidak valid"})
        return
    }

    if req.FullName == "" || req.Email == "" || req.FatherName == "" || req.MotherName == "" {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data tidak lengkap. Mohon isi semua kolom wajib."})
        return
    }

    now := time.Now().UTC()
    student := models.Student{
        ID:                uuid.NewString(),
        FullName:          req.FullName,
        PlaceOfBirth:      req.PlaceOfBirth,
        DateOfBirth:       req.DateOfBirth,
        Gender:            req.Gender,
        NISN:              req.NISN,
        Address:           req.Address,
        Phone:             req.Phone,
        FatherName:        req.FatherName,
        FatherJob:         req.FatherJob,
        MotherName:        req.MotherName,
        MotherJob:         req.MotherJob,
        ParentPhone:       req.ParentPhone,
        Email:             req.Email,
        PreviousSchool:    req.PreviousSchool,
        SchoolAddress:     req.SchoolAddress,
        Program:           req.Program,
        AverageGrade:      req.AverageGrade,
        Hafalan:           req.Hafalan,
        Activity:          req.Activity,
        Motivation:        req.Motivation,
        Status:            models.StatusPending,
        Verified:          false,
        VerificationToken: uuid.NewString(),
        CreatedAt:         now,
        UpdatedAt:         now,
    }

    if err := rc.Store.CreateApplicant(&student); err != nil {
        if errors.Is(err, store.ErrEmailTaken) {
            c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email sudah terdaftar"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    go rc.Mailer.SendVerification(student)
    rc.broadcast(ws.EventRegistered, student)

    c.JSON(http.StatusOK, gin.H{
        "success":            true,
        "message":            "Pendaftaran berhasil! Silakan verifikasi email Anda.",
        "registrationNumber": student.RegistrationNumber,
        "verificationToken":  student.VerificationToken,
    })
}

// Verify consumes a one-time verification token. An unknown or stale
// token is a normal negative result, not an error.
func (rc *RegistrationController) Verify(c *gin.Context) {
    student, result, err := rc.Store.Verify(c.Param("token"))
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    switch result {
    case store.VerifyInvalid:
        c.JSON(http.StatusOK, gin.H{"success": false, "message": "Token verifikasi tidak valid"})
    case store.VerifyAlreadyDone:
        c.JSON(http.StatusOK, gin.H{
            "success": true,
            "message": "Email sudah terverifikasi sebelumnya",
            "student": student.Summary(),
        })
    case store.VerifyOK:
        rc.broadcast(ws.EventVerified, student)
        c.JSON(http.StatusOK, gin.H{
            "success": true,
            "message": "Verifikasi berhasil!",
            "student": student.Summary(),
        })
    }
}

// Status answers the public "check my application" form. The query must
// exactly equal a registration number or an email.
func (rc *RegistrationController) Status(c *gin.Context) {
    query := c.Query("query")
    if query == "" {
        // A blank query would otherwise hit the first record with an
        // empty email, which the check-free admin-add path can create.
        c.JSON(http.StatusOK, gin.H{"success": false, "message": "Pendaftaran tidak ditemukan"})
        return
    }

    student, err := rc.Store.FindByQuery(query)
    if err != nil {
        if errors.Is(err, store.ErrNotFound) {
            c.JSON(http.StatusOK, gin.H{"success": false, "message": "Pendaftaran tidak ditemukan"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "success": true,
        "student": student.StatusView(),
    })
}

func (rc *RegistrationController) broadcast(eventType string, student models.Student) {
    if rc.Hub == nil {
        return
    }
    stats, err := rc.Store.Stats()
    if err != nil {
        return
    }
    rc.Hub.Broadcast(ws.Event{
        Type:    eventType,
        Student: ws.SummaryOf(student),
        Stats:   stats,
    })
}
