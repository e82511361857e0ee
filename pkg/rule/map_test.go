// Test Type: Unit Test
// Description: Tests for the ordered rule map - precedence, replacement, extension

package rule_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcs-go/vcsurl/pkg/errors"
	"github.com/vcs-go/vcsurl/pkg/rule"
)

func labelsOf(rules []rule.Rule) []string {
	labels := make([]string, len(rules))
	for i, r := range rules {
		labels[i] = r.Label
	}
	return labels
}

func TestMap_Ordered(t *testing.T) {
	t.Run("weight descending, registration order breaks ties", func(t *testing.T) {
		m, err := rule.NewMap(
			rule.Rule{Label: "low", Pattern: `^a`, Weight: 0},
			rule.Rule{Label: "high-first", Pattern: `^b`, Weight: 10},
			rule.Rule{Label: "high-second", Pattern: `^c`, Weight: 10},
			rule.Rule{Label: "mid", Pattern: `^d`, Weight: 5},
		)
		require.NoError(t, err)

		want := []string{"high-first", "high-second", "mid", "low"}
		if diff := cmp.Diff(want, labelsOf(m.Ordered())); diff != "" {
			t.Errorf("Ordered() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ordered returns a copy", func(t *testing.T) {
		m := rule.MustMap(
			rule.Rule{Label: "a", Pattern: `^a`},
			rule.Rule{Label: "b", Pattern: `^b`, Weight: 1},
		)
		ordered := m.Ordered()
		ordered[0] = rule.MustNew(rule.Rule{Label: "intruder", Pattern: `^x`})

		_, found := m.Get("intruder")
		assert.False(t, found, "mutating the returned slice must not affect the map")
	})
}

func TestMap_Register(t *testing.T) {
	t.Run("invalid pattern rejected at registration", func(t *testing.T) {
		m := rule.MustMap()
		err := m.Register(rule.Rule{Label: "bad", Pattern: `^(`})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRule))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("replacement keeps the registration slot", func(t *testing.T) {
		m := rule.MustMap(
			rule.Rule{Label: "a", Pattern: `^a`},
			rule.Rule{Label: "b", Pattern: `^b`},
			rule.Rule{Label: "c", Pattern: `^c`},
		)

		require.NoError(t, m.Register(rule.Rule{
			Label:       "b",
			Description: "replacement",
			Pattern:     `^b2`,
		}))

		assert.Equal(t, 3, m.Len())
		want := []string{"a", "b", "c"}
		if diff := cmp.Diff(want, labelsOf(m.Ordered())); diff != "" {
			t.Errorf("order changed after in-place replacement (-want +got):\n%s", diff)
		}

		got, found := m.Get("b")
		require.True(t, found)
		assert.Equal(t, "replacement", got.Description)
	})
}

func TestMap_Unregister(t *testing.T) {
	m := rule.MustMap(
		rule.Rule{Label: "a", Pattern: `^a`},
		rule.Rule{Label: "b", Pattern: `^b`},
	)

	m.Unregister("a")
	assert.Equal(t, 1, m.Len())
	_, found := m.Get("a")
	assert.False(t, found)

	// Removing an unknown label is a no-op.
	m.Unregister("missing")
	assert.Equal(t, 1, m.Len())
}

func TestMap_First(t *testing.T) {
	t.Run("higher weight wins", func(t *testing.T) {
		m := rule.MustMap(
			rule.Rule{Label: "generic", Pattern: `^repo:`, Weight: 0},
			rule.Rule{Label: "specific", Pattern: `^repo:internal/`, Weight: 10},
		)

		r, _, ok := m.First("repo:internal/tools", false)
		require.True(t, ok)
		assert.Equal(t, "specific", r.Label)
	})

	t.Run("equal weight falls back to registration order", func(t *testing.T) {
		m := rule.MustMap(
			rule.Rule{Label: "first", Pattern: `^repo:`},
			rule.Rule{Label: "second", Pattern: `^repo:`},
		)

		r, _, ok := m.First("repo:anything", false)
		require.True(t, ok)
		assert.Equal(t, "first", r.Label)
	})

	t.Run("explicit filter skips implicit rules", func(t *testing.T) {
		m := rule.MustMap(
			rule.Rule{Label: "implicit", Pattern: `^repo:`, Weight: 10},
			rule.Rule{Label: "explicit", Pattern: `^repo:`, Explicit: true},
		)

		r, _, ok := m.First("repo:anything", true)
		require.True(t, ok)
		assert.Equal(t, "explicit", r.Label)

		m2 := rule.MustMap(rule.Rule{Label: "implicit", Pattern: `^repo:`})
		_, _, ok = m2.First("repo:anything", true)
		assert.False(t, ok, "explicit walk over implicit-only rules finds nothing")
	})

	t.Run("exhausted map reports no match", func(t *testing.T) {
		m := rule.MustMap(rule.Rule{Label: "a", Pattern: `^a`})
		_, _, ok := m.First("zzz", false)
		assert.False(t, ok)
	})
}

func TestMap_WithAdditions(t *testing.T) {
	parent := rule.MustMap(
		rule.Rule{Label: "base", Pattern: `^repo:`},
	)

	child, err := parent.WithAdditions(
		rule.Rule{Label: "extra", Pattern: `^special:`, Weight: 100},
	)
	require.NoError(t, err)

	t.Run("child sees base and extra rules", func(t *testing.T) {
		assert.Equal(t, 2, child.Len())

		r, _, ok := child.First("special:thing", false)
		require.True(t, ok)
		assert.Equal(t, "extra", r.Label)

		r, _, ok = child.First("repo:thing", false)
		require.True(t, ok)
		assert.Equal(t, "base", r.Label)
	})

	t.Run("parent is unaffected", func(t *testing.T) {
		assert.Equal(t, 1, parent.Len())
		_, _, ok := parent.First("special:thing", false)
		assert.False(t, ok)
	})

	t.Run("siblings are independent", func(t *testing.T) {
		sibling, err := parent.WithAdditions(
			rule.Rule{Label: "other", Pattern: `^other:`},
		)
		require.NoError(t, err)

		_, found := sibling.Get("extra")
		assert.False(t, found, "additions to one child must not leak into another")
	})

	t.Run("invalid addition fails without side effects", func(t *testing.T) {
		_, err := parent.WithAdditions(rule.Rule{Label: "bad", Pattern: `^(`})
		require.Error(t, err)
		assert.Equal(t, 1, parent.Len())
	})
}
