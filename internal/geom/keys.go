package geom

import (
	"slices"
	"strings"
)

// FoldKey returns the key of m that equals name ignoring case. An exact match
// wins; among case-insensitive matches the first in sort order is returned.
func FoldKey[V any](m map[string]V, name string) (string, bool) {
	if _, ok := m[name]; ok {
		return name, true
	}
	for _, key := range sortedKeys(m) {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// CaseDuplicate reports two distinct keys of m that differ only in case.
func CaseDuplicate[V any](m map[string]V) (string, string, bool) {
	keys := sortedKeys(m)
	for i, a := range keys {
		for _, b := range keys[i+1:] {
			if strings.EqualFold(a, b) {
				return a, b, true
			}
		}
	}
	return "", "", false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
