package crypto

import (
	"errors"
	"strings"
	"testing"
)

var errBrokenSource = errors.New("entropy exhausted")

type brokenSource struct{}

func (brokenSource) NextIndex(int) (int, error) { return 0, errBrokenSource }

// sequenceSource replays fixed indices, wrapping into bound.
type sequenceSource struct {
	seq []int
	pos int
}

func (s *sequenceSource) NextIndex(bound int) (int, error) {
	v := s.seq[s.pos%len(s.seq)] % bound
	s.pos++
	return v, nil
}

func testStream(t *testing.T) *StreamSource {
	t.Helper()
	src, err := NewStreamSource([]byte(strings.Repeat("k", 32)))
	if err != nil {
		t.Fatalf("NewStreamSource() unexpected error: %v", err)
	}
	return src
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		opts    GeneratorOptions
		wantErr error
	}{
		{
			name: "default options",
			opts: DefaultOptions(),
		},
		{
			name: "all classes at maximum slider length",
			opts: GeneratorOptions{Length: 32, Classes: AllClasses},
		},
		{
			name: "uppercase only",
			opts: GeneratorOptions{Length: 16, Classes: NewClassSet(Uppercase)},
		},
		{
			name: "lowercase only",
			opts: GeneratorOptions{Length: 16, Classes: NewClassSet(Lowercase)},
		},
		{
			name: "digits only",
			opts: GeneratorOptions{Length: 16, Classes: NewClassSet(Digit)},
		},
		{
			name: "symbols only",
			opts: GeneratorOptions{Length: 16, Classes: NewClassSet(Symbol)},
		},
		{
			name: "single character",
			opts: GeneratorOptions{Length: 1, Classes: AllClasses},
		},
		{
			name: "length beyond slider range",
			opts: GeneratorOptions{Length: 500, Classes: NewClassSet(Lowercase, Digit)},
		},
		{
			name:    "zero length",
			opts:    GeneratorOptions{Length: 0, Classes: AllClasses},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "negative length",
			opts:    GeneratorOptions{Length: -3, Classes: AllClasses},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "no character classes selected",
			opts:    GeneratorOptions{Length: 8},
			wantErr: ErrNoClassSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.opts, SystemSource{})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.opts.Length {
				t.Errorf("Generate() length = %d, want %d", len(result), tt.opts.Length)
			}
			alphabet := tt.opts.Classes.Alphabet()
			for _, ch := range result {
				if !strings.ContainsRune(alphabet, ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), alphabet)
				}
			}
		})
	}
}

func TestGenerateNoClassSelectedRegardlessOfLength(t *testing.T) {
	for _, length := range []int{1, 4, 8, 32, 1000} {
		_, err := Generate(GeneratorOptions{Length: length}, SystemSource{})
		if !errors.Is(err, ErrNoClassSelected) {
			t.Errorf("Generate(length=%d) error = %v, want %v", length, err, ErrNoClassSelected)
		}
	}
}

func TestGenerateMayOmitEnabledClass(t *testing.T) {
	// Index 0 every time picks 'A' from the combined pool.
	src := &sequenceSource{seq: []int{0}}
	password, err := Generate(GeneratorOptions{Length: 8, Classes: AllClasses}, src)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "AAAAAAAA" {
		t.Errorf("Generate() = %q, want %q", password, "AAAAAAAA")
	}
}

func TestGenerateUsesFixedClassOrder(t *testing.T) {
	set := NewClassSet(Symbol, Digit, Lowercase, Uppercase)
	want := uppercaseChars + lowercaseChars + numberChars + symbolChars
	if got := set.Alphabet(); got != want {
		t.Errorf("Alphabet() = %q, want %q", got, want)
	}

	// 26 + 26 lands on the first digit.
	src := &sequenceSource{seq: []int{52}}
	password, err := Generate(GeneratorOptions{Length: 3, Classes: set}, src)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "000" {
		t.Errorf("Generate() = %q, want %q", password, "000")
	}
}

func TestGenerateDeterministicWithStreamSource(t *testing.T) {
	opts := GeneratorOptions{Length: 24, Classes: AllClasses}

	first, err := Generate(opts, testStream(t))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	second, err := Generate(opts, testStream(t))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same key produced different passwords: %q vs %q", first, second)
	}
}

func TestGeneratePropagatesSourceError(t *testing.T) {
	_, err := Generate(DefaultOptions(), brokenSource{})
	if !errors.Is(err, errBrokenSource) {
		t.Errorf("Generate() error = %v, want %v", err, errBrokenSource)
	}

	_, err = GenerateEachClass(DefaultOptions(), brokenSource{})
	if !errors.Is(err, errBrokenSource) {
		t.Errorf("GenerateEachClass() error = %v, want %v", err, errBrokenSource)
	}
}

func TestGenerateEachClassContainsRequiredTypes(t *testing.T) {
	opts := GeneratorOptions{Length: 4, Classes: AllClasses}
	src := testStream(t)

	for i := 0; i < 50; i++ {
		password, err := GenerateEachClass(opts, src)
		if err != nil {
			t.Fatalf("GenerateEachClass() unexpected error: %v", err)
		}
		if len(password) != opts.Length {
			t.Fatalf("GenerateEachClass() length = %d, want %d", len(password), opts.Length)
		}

		if !strings.ContainsAny(password, uppercaseChars) {
			t.Errorf("password %q missing uppercase character", password)
		}
		if !strings.ContainsAny(password, lowercaseChars) {
			t.Errorf("password %q missing lowercase character", password)
		}
		if !strings.ContainsAny(password, numberChars) {
			t.Errorf("password %q missing number character", password)
		}
		if !strings.ContainsAny(password, symbolChars) {
			t.Errorf("password %q missing symbol character", password)
		}
	}
}

func TestGenerateEachClassErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    GeneratorOptions
		wantErr error
	}{
		{"no classes", GeneratorOptions{Length: 8}, ErrNoClassSelected},
		{"too short for classes", GeneratorOptions{Length: 3, Classes: AllClasses}, ErrLengthInsufficient},
		{"zero length", GeneratorOptions{Length: 0, Classes: AllClasses}, ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateEachClass(tt.opts, SystemSource{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GenerateEachClass() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	opts := GeneratorOptions{Length: 16, Classes: AllClasses}
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(opts, SystemSource{})
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

func TestClassSet(t *testing.T) {
	set := NewClassSet(Lowercase, Symbol)
	if !set.Has(Lowercase) || !set.Has(Symbol) {
		t.Errorf("set %08b missing enabled classes", set)
	}
	if set.Has(Uppercase) || set.Has(Digit) {
		t.Errorf("set %08b has classes that were not enabled", set)
	}
	if got := set.Classes(); len(got) != 2 || got[0] != Lowercase || got[1] != Symbol {
		t.Errorf("Classes() = %v, want [lowercase symbol]", got)
	}
	if ClassSet(0).Alphabet() != "" {
		t.Error("empty set should have empty alphabet")
	}
}
