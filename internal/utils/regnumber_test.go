package utils

import (
    "regexp"
    "strings"
    "testing"
)

func TestNewRegistrationNumberFormat(t *testing.T) {
    got, err := NewRegistrationNumber(2024, nil)
    if err != nil {
        t.Fatalf("Generation failed: %v", err)
    }
    if !regexp.MustCompile(`^REG-2024-\d{4}$`).MatchString(got) {
        t.Errorf("Bad format: %q", got)
    }
}

func TestNewRegistrationNumberRetriesTakenNumbers(t *testing.T) {
    var first string
    taken := func(candidate string) bool {
        if first == "" {
            first = candidate
            return true
        }
        return candidate == first
    }
    got, err := NewRegistrationNumber(2024, taken)
    if err != nil {
        t.Fatalf("Generation failed: %v", err)
    }
    if got == first {
        t.Errorf("Returned a number reported as taken: %q", got)
    }
    if !strings.HasPrefix(got, "REG-2024-") {
        t.Errorf("Bad prefix: %q", got)
    }
}

func TestNewRegistrationNumberExhaustion(t *testing.T) {
    taken := func(string) bool { return true }
    if _, err := NewRegistrationNumber(2024, taken); err == nil {
        t.Error("Expected an error when every number is taken")
    }
}
