// Package match provides the filename predicate used during traversal and
// the result sinks that collect matching paths.
package match

// Name reports whether entryName equals target ignoring ASCII letter case.
//
// Only the letters A-Z and a-z are folded. Every other byte, including
// multi-byte UTF-8 sequences, must be identical, so "É" does not match "é".
// There is no partial or pattern matching.
func Name(entryName, target string) bool {
	if len(entryName) != len(target) {
		return false
	}
	for i := 0; i < len(entryName); i++ {
		a, b := entryName[i], target[i]
		if a == b {
			continue
		}
		if toLowerASCII(a) != toLowerASCII(b) {
			return false
		}
	}
	return true
}

func toLowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
