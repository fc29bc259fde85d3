package codes

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidLength = errors.New("invalid code length")
)

const (
	// charsetBase36Upper is the alphabet of strconv base 36, uppercased
	charsetBase36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ConfirmationPattern matches numbers produced by a Generator with the default prefix.
var ConfirmationPattern = regexp.MustCompile(`^BK-[0-9A-Z]+-[0-9A-Z]{4}$`)

// Generator produces booking confirmation numbers of the form
// <prefix>-<unix millis base36>-<random base36>, all uppercase.
// Numbers are not checked for uniqueness; two draws in the same
// millisecond can collide.
type Generator struct {
	cfg Config
	now func() time.Time
}

func NewGenerator(cfg Config) *Generator {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultConfig().Prefix
	}
	if cfg.SuffixLength < 1 {
		cfg.SuffixLength = DefaultConfig().SuffixLength
	}
	return &Generator{cfg: cfg, now: time.Now}
}

// WithClock returns a copy of g that reads time from now.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	cp := *g
	cp.now = now
	return &cp
}

func (g *Generator) ConfirmationNumber() (string, error) {
	stamp := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))

	suffix, err := GenerateCode(g.cfg.SuffixLength, charsetBase36Upper)
	if err != nil {
		return "", err
	}

	return NormalizeCode(g.cfg.Prefix) + "-" + stamp + "-" + suffix, nil
}

// GenerateCode creates a code of specified length from a given character set.
func GenerateCode(length int, charset string) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}
	if len(charset) == 0 {
		return "", errors.New("charset cannot be empty")
	}

	return generateFromCharset(length, charset)
}

// NormalizeCode normalizes a code for comparison (uppercase, trim whitespace).
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func generateFromCharset(length int, charset string) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(charset)))

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		result[i] = charset[n.Int64()]
	}

	return string(result), nil
}
