package order

import (
	"fmt"
	"strconv"
	"strings"

	"canteen/internal/pkg/errs"
)

// TokenPrefix is the constant alphabetic prefix of every order token.
const TokenPrefix = "TKN"

// tokenDigits is the minimum width of the numeric suffix; sequence values
// beyond 9999 widen the suffix rather than wrap.
const tokenDigits = 4

// Token is the human-presentable unique identifier of an order, derived from
// a monotonic sequence: "TKN" followed by the zero-padded decimal sequence
// value, e.g. "TKN0042". The numeric value carries no meaning beyond issuance
// order, but the format is stable and parseable for display and debugging.
type Token struct {
	value string
}

// NewToken formats the token for a sequence value issued by the sequence
// generator. Sequence values start at 1.
func NewToken(seq int64) (Token, error) {
	if seq < 1 {
		return Token{}, errs.NewValueIsInvalidErrorWithCause("orderToken",
			fmt.Errorf("sequence value %d is not positive", seq))
	}
	return Token{value: fmt.Sprintf("%s%0*d", TokenPrefix, tokenDigits, seq)}, nil
}

// TokenFromString validates a persisted or wire token value.
func TokenFromString(s string) (Token, error) {
	if _, err := ParseToken(s); err != nil {
		return Token{}, err
	}
	return Token{value: s}, nil
}

// ParseToken extracts the numeric sequence value from a token string.
func ParseToken(s string) (int64, error) {
	digits, ok := strings.CutPrefix(s, TokenPrefix)
	if !ok || digits == "" {
		return 0, errs.NewValueIsInvalidErrorWithCause("orderToken",
			fmt.Errorf("%q does not match %s<seq>", s, TokenPrefix))
	}
	seq, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || seq < 1 {
		return 0, errs.NewValueIsInvalidErrorWithCause("orderToken",
			fmt.Errorf("%q does not carry a positive sequence value", s))
	}
	return seq, nil
}

// String returns the token text, e.g. "TKN0042".
func (t Token) String() string {
	return t.value
}

// Seq returns the numeric sequence value the token was issued from.
func (t Token) Seq() int64 {
	seq, _ := ParseToken(t.value)
	return seq
}

// Validate returns an error for a zero-value Token.
func (t Token) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("orderToken")
	}
	return nil
}
