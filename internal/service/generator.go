package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/model"
)

const (
	MinLength     = 4
	MaxLength     = 32
	DefaultLength = 12
)

var (
	ErrLengthTooShort = fmt.Errorf("password length must be at least %d", MinLength)
	ErrLengthTooLong  = fmt.Errorf("password length must be at most %d", MaxLength)
	ErrEmptyPassword  = errors.New("password is required")
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	src     crypto.RandomSource
	metrics *metrics.Generator
}

// NewGeneratorService creates a new GeneratorService drawing from src.
// m may be nil.
func NewGeneratorService(src crypto.RandomSource, m *metrics.Generator) *GeneratorService {
	if src == nil {
		src = crypto.SystemSource{}
	}
	return &GeneratorService{src: src, metrics: m}
}

// Generate produces a password and its strength rating based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := crypto.GeneratorOptions{
		Length:  req.Length,
		Classes: classesFromRequest(req),
	}

	if opts.Length == 0 {
		opts.Length = DefaultLength
	}
	if opts.Length < MinLength {
		s.metrics.ObserveOutcome(metrics.OutcomeInvalid)
		return model.GenerateResponse{}, ErrLengthTooShort
	}
	if opts.Length > MaxLength {
		s.metrics.ObserveOutcome(metrics.OutcomeInvalid)
		return model.GenerateResponse{}, ErrLengthTooLong
	}

	generate := crypto.Generate
	if req.RequireEachClass {
		generate = crypto.GenerateEachClass
	}

	password, err := generate(opts, s.src)
	if err != nil {
		s.metrics.ObserveOutcome(outcomeFor(err))
		return model.GenerateResponse{}, err
	}

	rating := crypto.Score(password, opts.Length)
	s.metrics.ObserveOutcome(metrics.OutcomeSuccess)
	s.metrics.ObserveScore(string(rating.Label), rating.Score)

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Strength: toRating(rating),
		Estimate: toEstimate(crypto.EstimateStrength(password)),
	}, nil
}

// Score rates an existing password. A missing length falls back to the
// password's character count.
func (s *GeneratorService) Score(req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Password == "" {
		return model.StrengthResponse{}, ErrEmptyPassword
	}

	length := req.Length
	if length <= 0 {
		length = utf8.RuneCountInString(req.Password)
	}

	return model.StrengthResponse{
		Strength: toRating(crypto.Score(req.Password, length)),
		Estimate: toEstimate(crypto.EstimateStrength(req.Password)),
	}, nil
}

func classesFromRequest(req model.GenerateRequest) crypto.ClassSet {
	var set crypto.ClassSet
	if boolOrDefault(req.Uppercase, true) {
		set |= crypto.NewClassSet(crypto.Uppercase)
	}
	if boolOrDefault(req.Lowercase, true) {
		set |= crypto.NewClassSet(crypto.Lowercase)
	}
	if boolOrDefault(req.Numbers, true) {
		set |= crypto.NewClassSet(crypto.Digit)
	}
	if boolOrDefault(req.Symbols, true) {
		set |= crypto.NewClassSet(crypto.Symbol)
	}
	return set
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, crypto.ErrNoClassSelected):
		return metrics.OutcomeNoClassSelected
	case errors.Is(err, crypto.ErrLengthInsufficient), errors.Is(err, crypto.ErrInvalidLength):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func toRating(r crypto.StrengthRating) model.StrengthRating {
	return model.StrengthRating{
		Score: r.Score,
		Label: string(r.Label),
		Color: r.Color,
	}
}

func toEstimate(e crypto.Estimate) model.StrengthEstimate {
	return model.StrengthEstimate{
		Score:     e.Score,
		Entropy:   e.Entropy,
		CrackTime: e.CrackTime,
	}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
