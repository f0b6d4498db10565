package order_test

import (
	"testing"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	t.Run("zero pads to four digits", func(t *testing.T) {
		token, err := order.NewToken(7)

		require.NoError(t, err)
		assert.Equal(t, "TKN0007", token.String())
	})

	t.Run("widens beyond four digits instead of wrapping", func(t *testing.T) {
		token, err := order.NewToken(123456)

		require.NoError(t, err)
		assert.Equal(t, "TKN123456", token.String())
	})

	t.Run("rejects non-positive sequence values", func(t *testing.T) {
		for _, seq := range []int64{0, -1} {
			_, err := order.NewToken(seq)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestParseToken(t *testing.T) {
	t.Run("round trips through format and parse", func(t *testing.T) {
		for _, seq := range []int64{1, 42, 9999, 10000} {
			token, err := order.NewToken(seq)
			require.NoError(t, err)

			parsed, err := order.ParseToken(token.String())
			require.NoError(t, err)
			assert.Equal(t, seq, parsed)
			assert.Equal(t, seq, token.Seq())
		}
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		for _, s := range []string{"", "TKN", "0042", "ORD0042", "TKN00x2", "TKN0000"} {
			_, err := order.ParseToken(s)
			require.Error(t, err, "token %q", s)
		}
	})
}

func TestTokenFromString(t *testing.T) {
	t.Run("accepts a well-formed token", func(t *testing.T) {
		token, err := order.TokenFromString("TKN0042")

		require.NoError(t, err)
		require.NoError(t, token.Validate())
		assert.Equal(t, int64(42), token.Seq())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var token order.Token
		require.ErrorIs(t, token.Validate(), errs.ErrValueIsRequired)
	})
}
