// Package safety gates generated statements to read-only queries. The
// default policy is a prefix check against a dialect deny-list; it is
// deliberately conservative and is not a SQL parser, so comments or encoded
// keywords ahead of a dangerous clause can fool it. The Policy interface
// exists so a parser-backed allow-list can replace it without touching the
// executor.
package safety

import "strings"

type Policy interface {
	IsSafe(sql string) bool
}

// PrefixPolicy rejects any statement whose first keyword is on the
// deny-list and accepts only statements that begin with SELECT.
type PrefixPolicy struct {
	denyList []string
}

func NewPrefixPolicy(denyList []string) *PrefixPolicy {
	return &PrefixPolicy{denyList: denyList}
}

func (p *PrefixPolicy) IsSafe(sql string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(sql))
	if normalized == "" {
		return false
	}
	for _, keyword := range p.denyList {
		if strings.HasPrefix(normalized, keyword) {
			return false
		}
	}
	return strings.HasPrefix(normalized, "SELECT")
}
