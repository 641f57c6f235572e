package api

import (
	"bytes"
	"testing"

	"github.com/futofind/futofind/internal/auth"
)

func testSealer(t *testing.T) *auth.Sealer {
	t.Helper()
	s, err := auth.NewSealer(bytes.Repeat([]byte{7}, auth.KeySize))
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}
	return s
}
