package names_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kofiannan/biztrack-api/internal/domain/names"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Milo Tin", "milo tin"},
		{"  milo   tin  ", "milo tin"},
		{"MILO TIN", "milo tin"},
		{"milo\ttin", "milo tin"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, names.Normalize(tt.in), "input %q", tt.in)
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, names.Match("Sugar 1kg", "sugar 1KG"))
	assert.True(t, names.Match("  rice   bag ", "Rice Bag"))
	assert.False(t, names.Match("rice", "rice bag"))
	assert.False(t, names.Match("sugar", "salt"))
}

func TestMatchIsNotSubstring(t *testing.T) {
	// A shorter name never matches a longer one by containment.
	assert.False(t, names.Match("milo", "milo tin"))
}

func TestNormalizeConcurrent(t *testing.T) {
	// Normalize runs inside every request handler; it must be safe to call
	// from many goroutines at once. Run with -race.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := names.Normalize("  MILO   Tin "); got != "milo tin" {
					t.Errorf("Normalize = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
