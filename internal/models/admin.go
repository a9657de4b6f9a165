package models

// Credential is the singleton admin login pair persisted alongside the
// student records. Password holds a bcrypt hash.
type Credential struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

// Stats aggregates the whole applicant collection.
type Stats struct {
    Total    int `json:"total"`
    Verified int `json:"verified"`
    Pending  int `json:"pending"`
    Accepted int `json:"accepted"`
    Rejected int `json:"rejected"`
}
