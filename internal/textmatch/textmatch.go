// Package textmatch implements SQL LIKE matching that ignores case across
// all of Unicode, not only ASCII letters.
package textmatch

import "golang.org/x/text/cases"

// Like reports whether s matches pattern, where '%' matches any run of
// characters and '_' exactly one. Both sides are case folded first.
func Like(s, pattern string) bool {
	fold := cases.Fold()
	return match([]rune(fold.String(s)), []rune(fold.String(pattern)))
}

// Contains reports whether s matches '%' || term || '%' under Like, which is
// what ILIKE does for a substring search.
func Contains(s, term string) bool {
	return Like(s, "%"+term+"%")
}

func match(s, p []rune) bool {
	si, pi := 0, 0
	star, mark := -1, 0
	for si < len(s) {
		switch {
		case pi < len(p) && p[pi] == '%':
			star, mark = pi, si
			pi++
		case pi < len(p) && (p[pi] == '_' || p[pi] == s[si]):
			si++
			pi++
		case star >= 0:
			// let the last '%' swallow one more character
			mark++
			si, pi = mark, star+1
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '%' {
		pi++
	}
	return pi == len(p)
}
