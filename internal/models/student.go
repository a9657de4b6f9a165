package models

import "time"

// Statuses an application moves through. Values are the human-facing
// Indonesian labels; they appear verbatim in the persisted document and
// on the wire.
const (
    StatusPending  = "Dalam Proses"
    StatusAccepted = "Diterima"
    StatusRejected = "Ditolak"
)

func IsValidStatus(status string) bool {
    switch status {
    case StatusPending, StatusAccepted, StatusRejected:
        return true
    }
    return false
}

// Student is one applicant record. JSON tags double as the persisted
// document format and the admin API wire format.
type Student struct {
    ID                 string    `json:"id"`
    RegistrationNumber string    `json:"registrationNumber"`
    FullName           string    `json:"fullName"`
    PlaceOfBirth       string    `json:"placeOfBirth"`
    DateOfBirth        string    `json:"dateOfBirth"`
    Gender             string    `json:"gender"`
    NISN               string    `json:"nisn"`
    Address            string    `json:"address"`
    Phone              string    `json:"phone"`
    FatherName         string    `json:"fatherName"`
    FatherJob          string    `json:"fatherJob"`
    MotherName         string    `json:"motherName"`
    MotherJob          string    `json:"motherJob"`
    ParentPhone        string    `json:"parentPhone"`
    Email              string    `json:"email"`
    PreviousSchool     string    `json:"previousSchool"`
    SchoolAddress      string    `json:"schoolAddress"`
    Program            string    `json:"program"`
    AverageGrade       string    `json:"averageGrade"`
    Hafalan            string    `json:"hafalan"`
    Activity           string    `json:"activity"`
    Motivation         string    `json:"motivation"`
    Status             string    `json:"status"`
    Verified           bool      `json:"verified"`
    VerificationToken  string    `json:"verificationToken,omitempty"`
    CreatedAt          time.Time `json:"createdAt"`
    UpdatedAt          time.Time `json:"updatedAt"`
}

// Summary is the projection returned by the verify endpoint.
type Summary struct {
    RegistrationNumber string `json:"registrationNumber"`
    FullName           string `json:"fullName"`
    Email              string `json:"email"`
}

// StatusView is the public projection returned by the status endpoint.
// Guardian fields and the verification token are never exposed here.
type StatusView struct {
    RegistrationNumber string    `json:"registrationNumber"`
    FullName           string    `json:"fullName"`
    Email              string    `json:"email"`
    Program            string    `json:"program"`
    Status             string    `json:"status"`
    Verified           bool      `json:"verified"`
    CreatedAt          time.Time `json:"createdAt"`
}

func (s Student) Summary() Summary {
    return Summary{
        RegistrationNumber: s.RegistrationNumber,
        FullName:           s.FullName,
        Email:              s.Email,
    }
}

func (s Student) StatusView() StatusView {
    return StatusView{
        RegistrationNumber: s.RegistrationNumber,
        FullName:           s.FullName,
        Email:              s.Email,
        Program:            s.Program,
        Status:             s.Status,
        Verified:           s.Verified,
        CreatedAt:          s.CreatedAt,
    }
}
