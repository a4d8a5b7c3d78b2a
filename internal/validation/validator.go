package validation

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	symbolPattern    = regexp.MustCompile(`^[0-9]+$`)
	separatorPattern = regexp.MustCompile(`[\s,;\[\]]+`)
)

// ParseSymbols parses a whitespace, comma or bracket separated list of non-negative
// integers such as "3 2 1", "3,2,1" or "[3, 2, 1]".
func ParseSymbols(input string) ([]uint64, error) {
	input = SanitizeInput(input)
	if input == "" {
		return nil, fmt.Errorf("symbol list cannot be empty")
	}

	fields := separatorPattern.Split(input, -1)
	symbols := make([]uint64, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		if !symbolPattern.MatchString(f) {
			return nil, fmt.Errorf("invalid symbol %q: expected a non-negative integer", f)
		}
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid symbol %q: %w", f, err)
		}
		symbols = append(symbols, v)
	}

	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol list cannot be empty")
	}
	return symbols, nil
}

// ParseSymbolArgs parses command arguments, each of which may itself hold a list.
func ParseSymbolArgs(args []string) ([]uint64, error) {
	return ParseSymbols(strings.Join(args, " "))
}

// ValidateSymbols checks that every symbol is an element of F_prime.
func ValidateSymbols(symbols []uint64, prime uint64) error {
	for i, s := range symbols {
		if s >= prime {
			return fmt.Errorf("symbol %d (%d) must be less than the prime %d", i, s, prime)
		}
	}
	return nil
}

func ValidatePrime(prime uint64) error {
	if prime < 2 {
		return fmt.Errorf("prime must be at least 2 (got %d)", prime)
	}
	if prime >= 1<<63 {
		return fmt.Errorf("prime must be below 2^63 (got %d)", prime)
	}
	if !new(big.Int).SetUint64(prime).ProbablyPrime(20) {
		return fmt.Errorf("%d is not prime", prime)
	}
	return nil
}

func ValidateCodeParams(prime uint64, n, k int) error {
	if err := ValidatePrime(prime); err != nil {
		return err
	}

	if k < 1 {
		return fmt.Errorf("k must be at least 1 (got %d)", k)
	}

	if n <= k {
		return fmt.Errorf("n must be greater than k=%d (got %d)", k, n)
	}

	if uint64(n) > prime {
		return fmt.Errorf("n must not exceed the prime %d (got %d)", prime, n)
	}

	return nil
}

func ValidateErrorCount(errors, n int) error {
	if errors < 0 || errors > n {
		return fmt.Errorf("error count must be between 0 and %d (got %d)", n, errors)
	}
	return nil
}

func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}
