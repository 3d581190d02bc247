package gameid

import (
	"strings"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != 26 {
		t.Errorf("expected 26 characters, got %d", len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated id failed validation: %v", err)
	}
	if id[0] > '7' {
		t.Errorf("first character %c exceeds maximum '7'", id[0])
	}
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate id generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}

	// UUIDv7 ids sort by creation time.
	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("ids not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{
			name:    "valid id",
			id:      "01h5n0et5q6mt3v7ms1234abcd",
			wantErr: false,
		},
		{
			name:    "too short",
			id:      "01h5n0et5q6mt3v7ms123",
			wantErr: true,
		},
		{
			name:    "too long",
			id:      "01h5n0et5q6mt3v7ms1234abcdef",
			wantErr: true,
		},
		{
			name:    "first char too high",
			id:      "81h5n0et5q6mt3v7ms1234abcd",
			wantErr: true,
		},
		{
			name:    "invalid character",
			id:      "01h5n0et5q6mt3v7ms1234abci",
			wantErr: true,
		},
		{
			name:    "uppercase not allowed",
			id:      "01H5N0ET5Q6MT3V7MS1234ABCD",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	if len(alphabet) != 32 {
		t.Errorf("alphabet should have 32 characters, got %d", len(alphabet))
	}

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		if seen[char] {
			t.Errorf("duplicate character in alphabet: %c", char)
		}
		seen[char] = true
	}

	// Crockford base32 excludes the ambiguous letters.
	for _, char := range "ilou" {
		if strings.ContainsRune(alphabet, char) {
			t.Errorf("alphabet should not contain %c", char)
		}
	}
}

type fixedRandSource struct{ value int }

func (f fixedRandSource) Intn(n int) int { return f.value % n }

func TestGeneratorWithRandSource(t *testing.T) {
	gen := NewGenerator(fixedRandSource{value: 42})
	id := gen.Generate()
	if err := Validate(id); err != nil {
		t.Errorf("generated id failed validation: %v", err)
	}
}
