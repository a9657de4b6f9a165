package controllers

import (
    "bytes"
    "encoding/csv"
    "errors"
    "fmt"
    "io"
    "net/http"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"

    "github.com/zaqqye/ppdb_backend_v1/internal/models"
    "github.com/zaqqye/ppdb_backend_v1/internal/store"
    "github.com/zaqqye/ppdb_backend_v1/internal/ws"
)

type StudentController struct {
    Store *store.Store
    Hub   *ws.EventHub
}

type createStudentRequest struct {
    registerRequest
    Status string `json:"status"`
}

// List returns every record, full fidelity.
func (sc *StudentController) List(c *gin.Context) {
    students, err := sc.Store.List()
    if err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }
    c.JSON(http.StatusOK, gin.H{"success": true, "students": students})
}

func (sc *StudentController) Get(c *gin.Context) {
    student, err := sc.Store.Get(c.Param("id"))
    if err != nil {
        if errors.Is(err, store.ErrNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Siswa tidak ditemukan"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }
    c.JSON(http.StatusOK, gin.H{"success": true, "student": student})
}

// Create adds an admin-entered record. It is presumed pre-verified and
// carries no verification token; no required-field or uniqueness checks
// apply on this path.
func (sc *StudentController) Create(c *gin.Context) {
    var req createStudentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Permintaan tidak valid"})
        return
    }

    status := req.Status
    if status == "" {
        status = models.StatusPending
    }

    now := time.Now().UTC()
    student := models.Student{
        ID:             uuid.NewString(),
        FullName:       req.FullName,
        PlaceOfBirth:   req.PlaceOfBirth,
        DateOfBirth:    req.DateOfBirth,
        Gender:         req.Gender,
        NISN:           req.NISN,
        Address:        req.Address,
        Phone:          req.Phone,
        FatherName:     req.FatherName,
        FatherJob:      req.FatherJob,
        MotherName:     req.MotherName,
        MotherJob:      req.MotherJob,
        ParentPhone:    req.ParentPhone,
        Email:          req.Email,
        PreviousSchool: req.PreviousSchool,
        SchoolAddress:  req.SchoolAddress,
        Program:        req.Program,
        AverageGrade:   req.AverageGrade,
        Hafalan:        req.Hafalan,
        Activity:       req.Activity,
        Motivation:     req.Motivation,
        Status:         status,
        Verified:       true,
        CreatedAt:      now,
        UpdatedAt:      now,
    }

    if err := sc.Store.CreateStudent(&student); err != nil {
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    sc.broadcast(ws.EventRegistered, student)
    c.JSON(http.StatusOK, gin.H{
        "success": true,
        "message": "Siswa berhasil ditambahkan",
        "student": student,
    })
}

// Update shallow-merges the supplied fields onto the record: present
// fields overwrite, absent fields are preserved. id and createdAt stay
// immutable.
func (sc *StudentController) Update(c *gin.Context) {
    patch := map[string]any{}
    if err := c.ShouldBindJSON(&patch); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Permintaan tidak valid"})
        return
    }

    student, err := sc.Store.Merge(c.Param("id"), patch)
    if err != nil {
        if errors.Is(err, store.ErrNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Siswa tidak ditemukan"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    if _, ok := patch["status"]; ok {
        sc.broadcast(ws.EventStatusUpdate, student)
    }
    c.JSON(http.StatusOK, gin.H{
        "success": true,
        "message": "Data siswa berhasil diperbarui",
        "student": student,
    })
}

// Delete removes the record and returns its prior snapshot.
func (sc *StudentController) Delete(c *gin.Context) {
    student, err := sc.Store.Delete(c.Param("id"))
    if err != nil {
        if errors.Is(err, store.ErrNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Siswa tidak ditemukan"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Terjadi kesalahan server"})
        return
    }

    sc.broadcast(ws.EventDeleted, student)
    c.JSON(http.StatusOK, gin.H{
        "success": true,
        "message": "Siswa berhasil dihapus",
        "student": student,
    })
}

type studentImportError struct {
    Row   int    `json:"row"`
    Email string `json:"email,omitempty"`
    Error string `json:"error"`
}

// Import bulk-creates records from a CSV upload. Expected header columns
// (case-insensitive): fullName, email, plus any other applicant field.
// Rows are validated independently; one bad row never aborts the file.
func (sc *StudentController) Import(c *gin.Context) {
    // Limit max upload size (10MB) to avoid accidental huge files.
    if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Gagal membaca form"})
        return
    }
    file, fileHeader, err := c.Request.FormFile("file")
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File wajib diunggah"})
        return
    }
    defer file.Close()

    if fileHeader == nil || !strings.HasSuffix(strings.ToLower(strings.TrimSpace(fileHeader.Filename)), ".csv") {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Hanya file .csv yang diizinkan"})
        return
    }

    data, err := io.ReadAll(file)
    if err != nil || len(bytes.TrimSpace(data)) == 0 {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File kosong atau tidak terbaca"})
        return
    }

    // Normalise line endings so CR-only and CRLF files behave consistently.
    data = bytes.ReplaceAll(data, []byte{'\r', '\n'}, []byte{'\n'})
    data = bytes.ReplaceAll(data, []byte{'\r'}, []byte{'\n'})

    delimiter := ','
    firstLineEnd := bytes.IndexByte(data, '\n')
    if firstLineEnd == -1 {
        firstLineEnd = len(data)
    }
    firstLine := bytes.TrimPrefix(data[:firstLineEnd], []byte{0xEF, 0xBB, 0xBF})
    if bytes.Contains(firstLine, []byte{';'}) && !bytes.Contains(firstLine, []byte{','}) {
        delimiter = ';'
    }

    reader := csv.NewReader(bytes.NewReader(data))
    reader.TrimLeadingSpace = true
    reader.FieldsPerRecord = -1
    reader.Comma = delimiter

    header, err := reader.Read()
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Gagal membaca header"})
        return
    }

    headerIdx := make(map[string]int, len(header))
    for idx, col := range header {
        key := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimPrefix(col, "\uFEFF"), "\"'")))
        if key != "" {
            headerIdx[key] = idx
        }
    }
    for _, required := range []string{"fullname", "email"} {
        if _, ok := headerIdx[required]; !ok {
            c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Kolom header wajib tidak ada: %s", required)})
            return
        }
    }

    getVal := func(record []string, key string) string {
        idx, ok := headerIdx[key]
        if !ok || idx >= len(record) {
            return ""
        }
        return strings.TrimSpace(record[idx])
    }

    var (
        totalRows   int
        createdRows int
        failures    []studentImportError
    )

    rowNum := 1 // header already consumed
    for {
        row, err := reader.Read()
        if err == io.EOF {
            break
        }
        rowNum++
        totalRows++
        if err != nil {
            failures = append(failures, studentImportError{
                Row:   rowNum,
                Error: fmt.Sprintf("gagal membaca baris: %v", err),
            })
            continue
        }

        fullName := getVal(row, "fullname")
        email := getVal(row, "email")
        if fullName == "" || email == "" {
            failures = append(failures, studentImportError{
                Row:   rowNum,
                Email: email,
                Error: "fullName dan email wajib diisi",
            })
            continue
        }

        status := getVal(row, "status")
        if status == "" {
            status = models.StatusPending
        } else if !models.IsValidStatus(status) {
            failures = append(failures, studentImportError{
                Row:   rowNum,
                Email: email,
                Error: "status tidak valid",
            })
            continue
        }

        now := time.Now().UTC()
        student := models.Student{
            ID:             uuid.NewString(),
            FullName:       fullName,
            PlaceOfBirth:   getVal(row, "placeofbirth"),
            DateOfBirth:    getVal(row, "dateofbirth"),
            Gender:         getVal(row, "gender"),
            NISN:           getVal(row, "nisn"),
            Address:        getVal(row, "address"),
            Phone:          getVal(row, "phone"),
            FatherName:     getVal(row, "fathername"),
            FatherJob:      getVal(row, "fatherjob"),
            MotherName:     getVal(row, "mothername"),
            MotherJob:      getVal(row, "motherjob"),
            ParentPhone:    getVal(row, "parentphone"),
            Email:          email,
            PreviousSchool: getVal(row, "previousschool"),
            SchoolAddress:  getVal(row, "schooladdress"),
            Program:        getVal(row, "program"),
            Status:         status,
            Verified:       true,
            CreatedAt:      now,
            UpdatedAt:      now,
        }

        if err := sc.Store.CreateApplicant(&student); err != nil {
            msg := "gagal menyimpan baris"
            if errors.Is(err, store.ErrEmailTaken) {
                msg = "email sudah terdaftar"
            }
            failures = append(failures, studentImportError{
                Row:   rowNum,
                Email: email,
                Error: msg,
            })
            continue
        }
        createdRows++
    }

    c.JSON(http.StatusOK, gin.H{
        "success": true,
        "summary": gin.H{
            "total_rows": totalRows,
            "inserted":   createdRows,
            "failed":     len(failures),
        },
        "errors": failures,
    })
}

func (sc *StudentController) broadcast(eventType string, student models.Student) {
    if sc.Hub == nil {
        return
    }
    stats, err := sc.Store.Stats()
    if err != nil {
        return
    }
    sc.Hub.Broadcast(ws.Event{
        Type:    eventType,
        Student: ws.SummaryOf(student),
        Stats:   stats,
    })
}
