package ticket

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/bodega-dev/bodega/pkg/errors"
)

// DefaultPrefix is the ID prefix used when no prefix is configured.
const DefaultPrefix = "bg"

const idPatternSource = `^[a-z]+-[a-f0-9]+$`

var idPattern = regexp.MustCompile(idPatternSource)

// NewID generates a new ticket ID of the form {prefix}-{6 hex chars},
// e.g. "bg-a1b2c3". The hex portion comes from a random UUID, so collisions
// are possible but unlikely at local-tracker scale; storage rejects
// duplicates on create.
func NewID(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	u := uuid.New()
	return prefix + "-" + hex.EncodeToString(u[:3])
}

// IsValidID reports whether s is a well-formed ticket ID.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}

// ResolveID resolves a full or partial ticket ID against the set of known
// IDs. An exact match always wins; otherwise a unique prefix match is
// accepted. Returns ErrCodeTicketNotFound when nothing matches and
// ErrCodeAmbiguousID when the prefix matches more than one ticket.
func ResolveID(partial string, ids []string) (string, error) {
	for _, id := range ids {
		if id == partial {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, partial) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", errors.New(errors.ErrCodeTicketNotFound, "no ticket found matching %q", partial)
	default:
		return "", errors.New(errors.ErrCodeAmbiguousID, "ambiguous ID %q matches: %s", partial, strings.Join(matches, ", "))
	}
}
