package formgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formgraph/formgraph"
)

func TestFailures(t *testing.T) {
	t.Parallel()

	t.Run("error message lists field and message", func(t *testing.T) {
		fs := formgraph.Failures{
			{Field: "Title", Message: "must be a known title"},
			{Field: "Line1", Message: "required"},
		}
		assert.Equal(t, "validation failed: Title: must be a known title; Line1: required", fs.Error())
	})

	t.Run("empty failures still read as an error", func(t *testing.T) {
		assert.Equal(t, "validation failed", formgraph.Failures{}.Error())
		assert.True(t, formgraph.Failures{}.IsEmpty())
	})

	t.Run("messages preserve emission order", func(t *testing.T) {
		fs := formgraph.Failures{{Message: "one"}, {Message: "two"}}
		assert.Equal(t, []string{"one", "two"}, fs.Messages())
	})

	t.Run("for field filters by field name", func(t *testing.T) {
		fs := formgraph.Failures{
			{Field: "A", Message: "a1"},
			{Field: "B", Message: "b1"},
			{Field: "A", Message: "a2"},
		}
		got := fs.ForField("A")
		assert.Len(t, got, 2)
		assert.Equal(t, []string{"a1", "a2"}, got.Messages())
	})
}

func TestResult(t *testing.T) {
	t.Parallel()

	t.Run("valid carries the value", func(t *testing.T) {
		res := formgraph.Valid("payload")
		assert.True(t, res.IsValid())
		assert.Equal(t, "payload", res.Value())
		assert.Empty(t, res.Failures())
	})

	t.Run("invalid accumulates failures", func(t *testing.T) {
		res := formgraph.Invalid(
			formgraph.Failure{Message: "one"},
			formgraph.Failure{Message: "two"},
		)
		assert.False(t, res.IsValid())
		assert.Len(t, res.Failures(), 2)
	})
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "member", formgraph.KindMember.String())
	assert.Equal(t, "collection", formgraph.KindCollection.String())
	assert.Equal(t, "comparison", formgraph.KindComparison.String())
	assert.Equal(t, "nested", formgraph.KindNested.String())
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "field", formgraph.LevelField.String())
	assert.Equal(t, "model", formgraph.LevelModel.String())
}
