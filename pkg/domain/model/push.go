package model

import "strings"

// PushEvent holds the fields of a push delivery that drive a build trigger.
// It only lives for the duration of one webhook request.
type PushEvent struct {
	Owner     string // repository owner login
	Repo      string // repository short name
	FullName  string // "owner/name"
	Branch    string // ref with the refs/heads/ namespace stripped
	CommitSHA string // head commit id of the push
}

// BranchFromRef strips the refs/heads/ namespace from a git ref.
// Refs outside that namespace (tags etc.) are returned unchanged.
func BranchFromRef(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}
