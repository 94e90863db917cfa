package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

var (
	ErrInvalidLength      = errors.New("password length must be positive")
	ErrNoClassSelected    = errors.New("at least one character type must be selected")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
)

// CharacterClass names one of the fixed alphabets a password can draw from.
type CharacterClass uint8

const (
	Uppercase CharacterClass = 1 << iota
	Lowercase
	Digit
	Symbol
)

// classOrder is the order alphabets are concatenated in.
var classOrder = [...]CharacterClass{Uppercase, Lowercase, Digit, Symbol}

// Alphabet returns the characters belonging to c.
func (c CharacterClass) Alphabet() string {
	switch c {
	case Uppercase:
		return uppercaseChars
	case Lowercase:
		return lowercaseChars
	case Digit:
		return numberChars
	case Symbol:
		return symbolChars
	}
	return ""
}

func (c CharacterClass) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	}
	return fmt.Sprintf("CharacterClass(%d)", uint8(c))
}

// ClassSet is a bit set of enabled character classes.
type ClassSet uint8

// AllClasses enables every character class.
const AllClasses = ClassSet(Uppercase | Lowercase | Digit | Symbol)

// NewClassSet builds a set from the given classes.
func NewClassSet(classes ...CharacterClass) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s |= ClassSet(c)
	}
	return s
}

// Has reports whether c is enabled.
func (s ClassSet) Has(c CharacterClass) bool {
	return s&ClassSet(c) != 0
}

// Classes lists the enabled classes in combination order.
func (s ClassSet) Classes() []CharacterClass {
	var out []CharacterClass
	for _, c := range classOrder {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Alphabet concatenates the alphabets of the enabled classes.
func (s ClassSet) Alphabet() string {
	var b strings.Builder
	for _, c := range s.Classes() {
		b.WriteString(c.Alphabet())
	}
	return b.String()
}

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length  int
	Classes ClassSet
}

// DefaultOptions returns 12 characters with every class enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:  12,
		Classes: AllClasses,
	}
}

// Generate draws each character independently and uniformly from the
// combined alphabet of the enabled classes. An enabled class is not
// guaranteed to appear in the result.
func Generate(opts GeneratorOptions, src RandomSource) (string, error) {
	if opts.Length <= 0 {
		return "", ErrInvalidLength
	}

	pool := opts.Classes.Alphabet()
	if pool == "" {
		return "", ErrNoClassSelected
	}

	result := make([]byte, opts.Length)
	for i := range result {
		ch, err := randChar(pool, src)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	return string(result), nil
}

// GenerateEachClass is like Generate but guarantees at least one character
// from every enabled class.
func GenerateEachClass(opts GeneratorOptions, src RandomSource) (string, error) {
	if opts.Length <= 0 {
		return "", ErrInvalidLength
	}

	requiredSets := opts.Classes.Classes()
	if len(requiredSets) == 0 {
		return "", ErrNoClassSelected
	}
	if opts.Length < len(requiredSets) {
		return "", ErrLengthInsufficient
	}
	pool := opts.Classes.Alphabet()

	result := make([]byte, opts.Length)

	for i, class := range requiredSets {
		ch, err := randChar(class.Alphabet(), src)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	for i := len(requiredSets); i < opts.Length; i++ {
		ch, err := randChar(pool, src)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := shuffle(result, src); err != nil {
		return "", err
	}

	return string(result), nil
}

func randChar(charset string, src RandomSource) (byte, error) {
	n, err := src.NextIndex(len(charset))
	if err != nil {
		return 0, fmt.Errorf("picking character: %w", err)
	}
	return charset[n], nil
}

// shuffle performs a Fisher-Yates shuffle driven by src.
func shuffle(data []byte, src RandomSource) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := src.NextIndex(i + 1)
		if err != nil {
			return fmt.Errorf("shuffling: %w", err)
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
