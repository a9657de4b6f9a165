package store

import (
    "encoding/json"
    "errors"
    "os"
    "sync"
    "time"

    "github.com/zaqqye/ppdb_backend_v1/internal/models"
    "github.com/zaqqye/ppdb_backend_v1/internal/utils"
)

var (
    ErrNotFound   = errors.New("student not found")
    ErrEmailTaken = errors.New("email already registered")
)

// Document is the persisted shape: one JSON object holding every student
// record and the singleton admin credential.
type Document struct {
    Students []models.Student  `json:"students"`
    Admin    models.Credential `json:"admin"`
}

// Store is a file-backed repository over a single JSON document. Every
// operation runs a whole-document read-modify-write cycle under one
// process-wide lock, so concurrent mutations cannot lose updates.
type Store struct {
    mu   sync.Mutex
    path string
}

// Open returns a store over the document at path. A missing document is
// created with an empty student list and the seed credential, password
// bcrypt-hashed. An existing document is left untouched.
func Open(path string, seed models.Credential) (*Store, error) {
    s := &Store{path: path}
    if _, err := os.Stat(path); err == nil {
        return s, nil
    } else if !os.IsNotExist(err) {
        return nil, err
    }
    hashed, err := utils.HashPassword(seed.Password)
    if err != nil {
        return nil, err
    }
    doc := &Document{
        Students: []models.Student{},
        Admin:    models.Credential{Username: seed.Username, Password: hashed},
    }
    if err := s.save(doc); err != nil {
        return nil, err
    }
    return s, nil
}

func (s *Store) load() (*Document, error) {
    data, err := os.ReadFile(s.path)
    if err != nil {
        return nil, err
    }
    var doc Document
    if err := json.Unmarshal(data, &doc); err != nil {
        return nil, err
    }
    if doc.Students == nil {
        doc.Students = []models.Student{}
    }
    return &doc, nil
}

func (s *Store) save(doc *Document) error {
    data, err := json.MarshalIndent(doc, "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(s.path, data, 0o644)
}

// Admin returns the singleton credential.
func (s *Store) Admin() (models.Credential, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return models.Credential{}, err
    }
    return doc.Admin, nil
}

// List returns every student record, full fidelity.
func (s *Store) List() ([]models.Student, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return nil, err
    }
    return doc.Students, nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.Student, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return models.Student{}, err
    }
    for _, st := range doc.Students {
        if st.ID == id {
            return st, nil
        }
    }
    return models.Student{}, ErrNotFound
}

// FindByQuery returns the first record whose registration number or
// email exactly equals query.
func (s *Store) FindByQuery(query string) (models.Student, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return models.Student{}, err
    }
    for _, st := range doc.Students {
        if st.RegistrationNumber == query || st.Email == query {
            return st, nil
        }
    }
    return models.Student{}, ErrNotFound
}

// CreateApplicant appends a public registration. The email must not be
// in use by any existing record. The registration number is assigned
// here so it stays unique within the document.
func (s *Store) CreateApplicant(st *models.Student) error {
    return s.insert(st, true)
}

// CreateStudent appends an admin-created record. No uniqueness or
// required-field checks apply, matching the admin-add contract.
func (s *Store) CreateStudent(st *models.Student) error {
    return s.insert(st, false)
}

func (s *Store) insert(st *models.Student, checkEmail bool) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return err
    }
    if checkEmail {
        for _, existing := range doc.Students {
            if existing.Email == st.Email {
                return ErrEmailTaken
            }
        }
    }
    regNo, err := utils.NewRegistrationNumber(time.Now().Year(), func(candidate string) bool {
        for _, existing := range doc.Students {
            if existing.RegistrationNumber == candidate {
                return true
            }
        }
        return false
    })
    if err != nil {
        return err
    }
    st.RegistrationNumber = regNo
    doc.Students = append(doc.Students, *st)
    return s.save(doc)
}

// VerifyResult classifies a token verification attempt.
type VerifyResult int

const (
    VerifyInvalid VerifyResult = iota
    VerifyAlreadyDone
    VerifyOK
)

// Verify looks up the record holding token. A hit that is still
// unverified flips verified, clears the token and refreshes updatedAt;
// a token can therefore succeed at most once.
func (s *Store) Verify(token string) (models.Student, VerifyResult, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return models.Student{}, VerifyInvalid, err
    }
    for i, st := range doc.Students {
        if token == "" || st.VerificationToken != token {
            continue
        }
        if st.Verified {
            return st, VerifyAlreadyDone, nil
        }
        doc.Students[i].Verified = true
        doc.Students[i].VerificationToken = ""
        doc.Students[i].UpdatedAt = time.Now().UTC()
        if err := s.save(doc); err != nil {
            return models.Student{}, VerifyInvalid, err
        }
        return doc.Students[i], VerifyOK, nil
    }
    return models.Student{}, VerifyInvalid, nil
}

// Merge shallow-merges patch onto the record with the given id: supplied
// fields overwrite, absent fields are preserved. id and createdAt are
// immutable; updatedAt is always refreshed.
func (s *Store) Merge(id string, patch map[string]any) (models.Student, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return models.Student{}, err
    }
    for i, st := range doc.Students {
        if st.ID != id {
            continue
        }
        merged, err := mergeStudent(st, patch)
        if err != nil {
            return models.Student{}, err
        }
        merged.ID = st.ID
        merged.CreatedAt = st.CreatedAt
        merged.UpdatedAt = time.Now().UTC()
        doc.Students[i] = merged
        if err := s.save(doc); err != nil {
            return models.Student{}, err
        }
        return merged, nil
    }
    return models.Student{}, ErrNotFound
}

func mergeStudent(st models.Student, patch map[string]any) (models.Student, error) {
    raw, err := json.Marshal(st)
    if err != nil {
        return models.Student{}, err
    }
    base := map[string]any{}
    if err := json.Unmarshal(raw, &base); err != nil {
        return models.Student{}, err
    }
    for k, v := range patch {
        base[k] = v
    }
    raw, err = json.Marshal(base)
    if err != nil {
        return models.Student{}, err
    }
    var merged models.Student
    if err := json.Unmarshal(raw, &merged); err != nil {
        return models.Student{}, err
    }
    return merged, nil
}

// Delete removes the record with the given id and returns its prior
// snapshot.
func (s *Store) Delete(id string) (models.Student, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return models.Student{}, err
    }
    for i, st := range doc.Students {
        if st.ID != id {
            continue
        }
        doc.Students = append(doc.Students[:i], doc.Students[i+1:]...)
        if err := s.save(doc); err != nil {
            return models.Student{}, err
        }
        return st, nil
    }
    return models.Student{}, ErrNotFound
}

// Stats aggregates the full collection.
func (s *Store) Stats() (models.Stats, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    doc, err := s.load()
    if err != nil {
        return models.Stats{}, err
    }
    stats := models.Stats{Total: len(doc.Students)}
    for _, st := range doc.Students {
        if st.Verified {
            stats.Verified++
        }
        switch st.Status {
        case models.StatusPending:
            stats.Pending++
        case models.StatusAccepted:
            stats.Accepted++
        case models.StatusRejected:
            stats.Rejected++
        }
    }
    return stats, nil
}
