package xref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		foreign string
		want    string
	}{
		{"delimited", "@I1@", "I1"},
		{"plain", "I1", "I1"},
		{"whitespace", "  @F12@ ", "F12"},
		{"inner whitespace kept", "@I 1@", "I 1"},
		{"only delimiters", "@@", ""},
		{"empty", "", ""},
		{"single at", "@", ""},
		{"missing trailing delimiter", "@I1", "I1"},
		{"missing leading delimiter", "I1@", "I1"},
		{"swedish letters", "@SÖREN1@", "SÖREN1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.foreign))
		})
	}
}

func TestRegisterAndResolve(t *testing.T) {
	m := New()

	require.True(t, m.Register("@I1@", "p_1"))

	// Both the normalized and the raw form resolve.
	id, ok := m.Resolve("@I1@")
	require.True(t, ok)
	assert.Equal(t, "p_1", id)

	id, ok = m.Resolve("I1")
	require.True(t, ok)
	assert.Equal(t, "p_1", id)

	// A lopsided delimiter still resolves the same id.
	id, ok = m.Resolve("@I1")
	require.True(t, ok)
	assert.Equal(t, "p_1", id)

	// Unknown ids do not resolve.
	_, ok = m.Resolve("@I2@")
	assert.False(t, ok)
}

func TestRegisterNeverOverwrites(t *testing.T) {
	m := New()

	require.True(t, m.Register("@I1@", "p_1"))
	assert.False(t, m.Register("I1", "p_2"), "re-registering the same normalized key must be a no-op")
	assert.False(t, m.Register("@I1@", "p_3"))

	id, ok := m.Resolve("@I1@")
	require.True(t, ok)
	assert.Equal(t, "p_1", id)
}

func TestResolveIdempotence(t *testing.T) {
	m := New()
	m.Register("@S4@", "s_1")

	first, ok1 := m.Resolve("@S4@")
	second, ok2 := m.Resolve("@S4@")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestRegisterRejectsEmpty(t *testing.T) {
	m := New()

	assert.False(t, m.Register("", "p_1"))
	assert.False(t, m.Register("@I1@", ""))
	assert.Equal(t, 0, m.Len())
}

func TestCopyIsIndependent(t *testing.T) {
	m := New()
	m.Register("@I1@", "p_1")

	cp := m.Copy()
	cp.Register("@I2@", "p_2")

	_, ok := m.Resolve("@I2@")
	assert.False(t, ok, "copy must not share state with the original")

	id, ok := cp.Resolve("I1")
	require.True(t, ok)
	assert.Equal(t, "p_1", id)
}

func TestWithEntries(t *testing.T) {
	m := New(WithEntries(map[string]string{"@I1@": "p_1"}))

	id, ok := m.Resolve("I1")
	require.True(t, ok)
	assert.Equal(t, "p_1", id)
}
