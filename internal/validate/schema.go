// Package validate checks that a decoded JSON document has the archive shape
// before anything else trusts it. It is not a JSON-Schema validator; it checks
// presence and type of every required key plus the timestamp format.
//
// Goals:
//   - Run on the generic decode (map[string]any) so wrong types are visible
//   - Aggregate every issue into a single error for better UX
//   - Never inspect values beyond what the comparator relies on
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"playlist-archiver/internal/archive"
	"playlist-archiver/internal/errs"
)

// Archive validates a document produced by json.Unmarshal into an any:
//
//   - The document is an object with "time" and "playlists".
//   - "time" is a string in archive.TimeLayout.
//   - "playlists" maps strings to playlist objects, each with string "id",
//     string "link" and object "videos".
//   - "videos" maps strings to video objects, each with string "id", "name",
//     "channel" and "link".
//
// Unknown keys are ignored. The function returns nil if everything looks
// fine, or one error wrapping errs.ErrWrongFormat that lists all issues.
func Archive(doc any) error {
	var errs errlist

	root, ok := doc.(map[string]any)
	if !ok {
		errs.add("archive must be a JSON object, got %s", kind(doc))
		return errs.err()
	}

	if ts, ok := requireString(&errs, "archive", root, "time"); ok {
		if _, err := archive.ParseTime(ts); err != nil {
			errs.add("archive.time %q does not match %q", ts, archive.TimeLayout)
		}
	}

	raw, present := root["playlists"]
	if !present {
		errs.add("archive.playlists is missing")
		return errs.err()
	}
	playlists, ok := raw.(map[string]any)
	if !ok {
		errs.add("archive.playlists must be an object, got %s", kind(raw))
		return errs.err()
	}
	for _, id := range sortedKeys(playlists) {
		playlist(&errs, id, playlists[id])
	}

	return errs.err()
}

// IsArchive is the boolean form of Archive.
func IsArchive(doc any) bool { return Archive(doc) == nil }

func playlist(errs *errlist, id string, raw any) {
	prefix := fmt.Sprintf("playlists[%q]", id)
	p, ok := raw.(map[string]any)
	if !ok {
		errs.add("%s must be an object, got %s", prefix, kind(raw))
		return
	}
	requireString(errs, prefix, p, "id")
	requireString(errs, prefix, p, "link")

	rv, present := p["videos"]
	if !present {
		errs.add("%s.videos is missing", prefix)
		return
	}
	videos, ok := rv.(map[string]any)
	if !ok {
		errs.add("%s.videos must be an object, got %s", prefix, kind(rv))
		return
	}
	for _, vid := range sortedKeys(videos) {
		vp := fmt.Sprintf("%s.videos[%q]", prefix, vid)
		v, ok := videos[vid].(map[string]any)
		if !ok {
			errs.add("%s must be an object, got %s", vp, kind(videos[vid]))
			continue
		}
		for _, key := range []string{"id", "name", "channel", "link"} {
			requireString(errs, vp, v, key)
		}
	}
}

// --- helpers -----------------------------------------------------------------

func requireString(errs *errlist, prefix string, obj map[string]any, key string) (string, bool) {
	raw, present := obj[key]
	if !present {
		errs.add("%s.%s is missing", prefix, key)
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		errs.add("%s.%s must be a string, got %s", prefix, key, kind(raw))
		return "", false
	}
	return s, true
}

// sortedKeys keeps error messages deterministic; Go map order is random.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// errlist aggregates multiple validation issues into a single error.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	if e == nil {
		return
	}
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err() error {
	if e == nil || len(e.msgs) == 0 {
		return nil
	}
	// Join with newline for readability.
	return fmt.Errorf("%w:\n%w", errs.ErrWrongFormat, errors.New(strings.Join(e.msgs, "\n")))
}
