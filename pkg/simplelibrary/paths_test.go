package simplelibrary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty normalizes to root", "", "ROOT"},
		{"bare separator normalizes to root", "/", "ROOT"},
		{"root stays root", "ROOT", "ROOT"},
		{"unrooted path gets root prepended", "Class10", "ROOT/Class10"},
		{"nested unrooted path", "Class10/Maths", "ROOT/Class10/Maths"},
		{"rooted path unchanged", "ROOT/Class10", "ROOT/Class10"},
		{"leading separator stripped", "/ROOT/Class10", "ROOT/Class10"},
		{"trailing separator stripped", "ROOT/Class10/", "ROOT/Class10"},
		{"both separators stripped", "/Class10/", "ROOT/Class10"},
		{"interior empty segments dropped", "Class10//book.pdf", "ROOT/Class10/book.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePath(tt.input))
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	inputs := []string{
		"", "/", "ROOT", "Class10", "ROOT/Class10/book.pdf",
		"//a//b//", "a/b/c", "/ROOT/", "ROOT//x",
	}
	for _, in := range inputs {
		once := NormalizePath(in)
		assert.Equal(t, once, NormalizePath(once), "input %q", in)
	}
}

func TestNormalizePathAlwaysRooted(t *testing.T) {
	inputs := []string{"", "a", "a/b", "/x/", "ROOT", "ROOT/a"}
	for _, in := range inputs {
		got := NormalizePath(in)
		first, _ := splitFirst(got)
		assert.Equal(t, RootToken, first, "input %q normalized to %q", in, got)
	}
}

func splitFirst(p string) (string, string) {
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			return p[:i], p[i+1:]
		}
	}
	return p, ""
}

func TestSplitPath(t *testing.T) {
	parent, leaf := SplitPath("ROOT/Class10/book.pdf")
	assert.Equal(t, "ROOT/Class10", parent)
	assert.Equal(t, "book.pdf", leaf)

	parent, leaf = SplitPath("ROOT/Class10")
	assert.Equal(t, "ROOT", parent)
	assert.Equal(t, "Class10", leaf)

	parent, leaf = SplitPath("ROOT")
	assert.Equal(t, "", parent)
	assert.Equal(t, "ROOT", leaf)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "ROOT/Class10", JoinPath("ROOT", "Class10"))
	assert.Equal(t, "book.pdf", JoinPath("", "book.pdf"))
}

func TestValidLeafName(t *testing.T) {
	for _, name := range []string{"book.pdf", "notes", "..hidden", "a.b.c"} {
		assert.True(t, ValidLeafName(name), "name %q", name)
	}
	for _, name := range []string{"", ".", "..", "a/b.txt", "/leading", "trailing/", "../../escape.txt"} {
		assert.False(t, ValidLeafName(name), "name %q", name)
	}
}

func TestLegacyParent(t *testing.T) {
	// The fallback only ever strips the prefix, never adds one.
	stripped, ok := legacyParent("ROOT/Class10")
	assert.True(t, ok)
	assert.Equal(t, "Class10", stripped)

	_, ok = legacyParent("ROOT")
	assert.False(t, ok, "bare root parent must not fall back")

	_, ok = legacyParent("Class10")
	assert.False(t, ok, "unrooted parent must not fall back")
}
