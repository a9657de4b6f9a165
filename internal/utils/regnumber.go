package utils

import (
    "crypto/rand"
    "errors"
    "fmt"
    "math/big"
)

// NewRegistrationNumber returns a number of form REG-<year>-<4 digits>
// with a crypto/rand suffix in [1000,9999]. taken reports whether a
// candidate is already in use; generation retries until a free number
// is found or the attempt budget runs out.
func NewRegistrationNumber(year int, taken func(string) bool) (string, error) {
    for attempt := 0; attempt < 100; attempt++ {
        n, err := rand.Int(rand.Reader, big.NewInt(9000))
        if err != nil {
            return "", err
        }
        candidate := fmt.Sprintf("REG-%d-%d", year, 1000+n.Int64())
        if taken != nil && taken(candidate) {
            continue
        }
        return candidate, nil
    }
    return "", errors.New("registration number space exhausted")
}
