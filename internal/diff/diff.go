// Package diff renders unified diffs of playlist listings.
// It uses github.com/pmezard/go-difflib/difflib to produce classic unified
// patches (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"
	"sort"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"playlist-archiver/internal/archive"
)

// Options controls patch generation behavior.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded,
	// a minimal placeholder patch is returned and oversize=true.
	// 0 means "no limit".
	MaxBytes int

	// Context controls the number of context lines in unified hunks.
	// If 0, default to 3.
	Context int
}

// Listing produces a unified patch between two listings. Lines are compared
// as given; callers sort them first when capture order should not matter.
// Returns the patch body and a flag indicating it was omitted due to size.
func Listing(aName, bName string, a, b []string, opt Options) (body string, oversize bool) {
	if opt.MaxBytes > 0 && (size(a)+size(b)) > opt.MaxBytes {
		return omitted(aName, bName), true
	}

	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}

	u := difflib.UnifiedDiff{
		A:        withNL(a),
		B:        withNL(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return omitted(aName, bName), false
	}
	return s, false
}

// VideoLines renders a video set as sorted "<id>\t<channel>\t<name>" lines so
// two captures line up regardless of playlist position.
func VideoLines(s *archive.VideoSet) []string {
	lines := make([]string, 0, s.Len())
	s.Each(func(id string, v archive.Video) {
		lines = append(lines, id+"\t"+v.Channel+"\t"+v.Name)
	})
	sort.Strings(lines)
	return lines
}

func withNL(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, "\n") + "\n"
	}
	return out
}

func size(lines []string) int {
	n := 0
	for _, l := range lines {
		n += len(l) + 1
	}
	return n
}

// omitted returns a compact placeholder when size limits are exceeded.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted (oversize)\n", aName, bName)
}
