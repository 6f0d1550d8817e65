package formgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxValidatorRecovery(t *testing.T) {
	t.Parallel()

	fn := func(ctx context.Context, value int, path string) Result {
		if value > 0 {
			return Valid(value)
		}
		return Invalid(Failure{Message: "must be positive", Path: path})
	}

	t.Run("recovers the declared type and invokes", func(t *testing.T) {
		env := boxValidator("Age", KindMember, false, "", fn)
		res, err := env.call(context.Background(), 7, "")
		require.NoError(t, err)
		assert.True(t, res.IsValid())

		res, err = env.call(context.Background(), -1, "")
		require.NoError(t, err)
		assert.False(t, res.IsValid())
	})

	t.Run("tag mismatch fails loudly", func(t *testing.T) {
		env := boxValidator("Age", KindMember, false, "", fn)
		_, err := env.call(context.Background(), "not an int", "Contact.Age")
		require.Error(t, err)
		assert.True(t, IsTypeMismatch(err))

		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "Contact.Age", mismatch.Path)
		assert.Equal(t, "int", mismatch.Want.String())
		assert.Equal(t, "string", mismatch.Got.String())
	})

	t.Run("nil argument substitutes the zero value", func(t *testing.T) {
		env := boxValidator("Age", KindMember, false, "", fn)
		res, err := env.call(context.Background(), nil, "")
		require.NoError(t, err)
		assert.False(t, res.IsValid())
	})
}

func TestRewriteKey(t *testing.T) {
	t.Parallel()

	t.Run("replaces the first segment with the parent", func(t *testing.T) {
		assert.Equal(t, "Address.Line1", rewriteKey("Address", "Location.Line1"))
	})

	t.Run("bare member keys are re-rooted", func(t *testing.T) {
		assert.Equal(t, "Address.Line1", rewriteKey("Address", "Line1"))
	})

	t.Run("only the first two segments survive", func(t *testing.T) {
		// Depth beyond the second segment is dropped, not re-derived.
		assert.Equal(t, "Address.Country", rewriteKey("Address", "Location.Country.Code"))
	})
}
