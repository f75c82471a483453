package simplelibrary

import "strings"

// RootToken is the fixed sentinel segment denoting the top of the
// hierarchy. Every canonical path starts with it.
const RootToken = "ROOT"

// PathSeparator separates segments of a virtual path.
const PathSeparator = "/"

// NormalizePath canonicalizes a client-supplied path: leading/trailing
// separators are stripped, empty segments are dropped, and the ROOT token
// is prepended when missing. The empty path normalizes to bare ROOT.
//
// The function is pure, total and idempotent:
// NormalizePath(NormalizePath(p)) == NormalizePath(p) for all p.
func NormalizePath(raw string) string {
	parts := strings.Split(raw, PathSeparator)
	segments := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	if len(segments) == 0 {
		return RootToken
	}
	if segments[0] != RootToken {
		segments = append([]string{RootToken}, segments...)
	}
	return strings.Join(segments, PathSeparator)
}

// SplitPath splits a canonical path into (parent, leaf) at the last
// separator. For the bare root token the parent is empty.
func SplitPath(canonical string) (parent, leaf string) {
	idx := strings.LastIndex(canonical, PathSeparator)
	if idx < 0 {
		return "", canonical
	}
	return canonical[:idx], canonical[idx+1:]
}

// JoinPath appends a leaf name to a canonical parent path.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + PathSeparator + name
}

// ValidLeafName reports whether name is usable as a single path
// segment. Separators and dot segments are rejected: either would
// change meaning when joined into a canonical path or a blob key.
func ValidLeafName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !strings.Contains(name, PathSeparator)
}

// legacyParent returns the parent with the ROOT/ prefix stripped, and
// whether the fallback applies. Records written before canonicalization
// was enforced stored ParentPath without the root token; lookups retry
// once against that form. The fallback only ever strips the prefix, never
// adds it, and a bare ROOT parent never falls back.
func legacyParent(parent string) (string, bool) {
	stripped := strings.TrimPrefix(parent, RootToken+PathSeparator)
	return stripped, stripped != parent
}
