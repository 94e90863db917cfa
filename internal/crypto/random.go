package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	"golang.org/x/crypto/chacha20"
)

const (
	SourceSystem   = "system"
	SourceChaCha20 = "chacha20"
)

var (
	ErrInvalidBound   = errors.New("random bound must be positive")
	ErrUnknownSource  = errors.New("unknown random source")
	ErrInvalidKeySize = errors.New("stream source key must be 32 bytes")
)

// RandomSource yields uniformly distributed indices in [0, bound).
type RandomSource interface {
	NextIndex(bound int) (int, error)
}

// NewSource returns the random source registered under name.
func NewSource(name string) (RandomSource, error) {
	switch name {
	case "", SourceSystem:
		return SystemSource{}, nil
	case SourceChaCha20:
		return NewRandomStreamSource()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}

// SystemSource draws from the operating system CSPRNG via crypto/rand.
type SystemSource struct{}

// NextIndex implements RandomSource.
func (SystemSource) NextIndex(bound int) (int, error) {
	if bound <= 0 {
		return 0, ErrInvalidBound
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(bound)))
	if err != nil {
		return 0, fmt.Errorf("reading system randomness: %w", err)
	}
	return int(n.Int64()), nil
}

// StreamSource expands a 32-byte key into a ChaCha20 keystream and reads
// indices from it. The same key always yields the same sequence.
type StreamSource struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
	buf    [8]byte
}

// NewStreamSource creates a deterministic source keyed by key.
func NewStreamSource(key []byte) (*StreamSource, error) {
	if len(key) != chacha20.KeySize {
		return nil, ErrInvalidKeySize
	}
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("creating chacha20 cipher: %w", err)
	}
	return &StreamSource{cipher: c}, nil
}

// NewRandomStreamSource creates a StreamSource keyed from crypto/rand.
func NewRandomStreamSource() (*StreamSource, error) {
	key := make([]byte, chacha20.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating stream key: %w", err)
	}
	return NewStreamSource(key)
}

// NextIndex implements RandomSource using rejection sampling so that every
// index in [0, bound) is equally likely.
func (s *StreamSource) NextIndex(bound int) (int, error) {
	if bound <= 0 {
		return 0, ErrInvalidBound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := uint64(bound)
	limit := math.MaxUint64 - math.MaxUint64%b
	for {
		v := s.next()
		if v < limit {
			return int(v % b), nil
		}
	}
}

// next reads the following 8 keystream bytes. Caller holds s.mu.
func (s *StreamSource) next() uint64 {
	clear(s.buf[:])
	s.cipher.XORKeyStream(s.buf[:], s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}
