// Package seqid generates the human-readable sequential identifiers used
// for orders, products, users and admin accounts (ORD0001, PRO0001,
// USER0001, ADM001/OWN001).
//
// Allocation is highest-seen + 1: the caller looks up the record with the
// highest identifier for the kind and passes it to Next. Gaps from deleted
// records are never refilled. The scheme is racy between the read and the
// insert; the unique constraint on the identifier column is the backstop,
// and creating services retry allocation when an insert reports
// domain.ErrDuplicateID.
package seqid

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind describes one identifier namespace.
type Kind struct {
	Prefix string
	Width  int
}

var (
	Order   = Kind{Prefix: "ORD", Width: 4}
	Product = Kind{Prefix: "PRO", Width: 4}
	User    = Kind{Prefix: "USER", Width: 4}
	Admin   = Kind{Prefix: "ADM", Width: 3}
	Owner   = Kind{Prefix: "OWN", Width: 3}
)

// ForRole returns the admin-account namespace for a role. Admins and
// owners count independently.
func ForRole(role string) Kind {
	if role == "owner" {
		return Owner
	}
	return Admin
}

// First is the identifier assigned when no prior record exists.
func (k Kind) First() string {
	return k.Format(1)
}

// Format zero-pads n to the kind's width. Values beyond the width keep
// all their digits rather than wrapping.
func (k Kind) Format(n int) string {
	return fmt.Sprintf("%s%0*d", k.Prefix, k.Width, n)
}

// Next computes the successor of the highest existing identifier. An
// empty lastID means no record exists yet and yields First.
func (k Kind) Next(lastID string) (string, error) {
	if lastID == "" {
		return k.First(), nil
	}

	n, err := k.Parse(lastID)
	if err != nil {
		return "", err
	}

	return k.Format(n + 1), nil
}

// Parse extracts the trailing digit run of an identifier.
func (k Kind) Parse(id string) (int, error) {
	if !strings.HasPrefix(id, k.Prefix) {
		return 0, fmt.Errorf("identifier %q does not match prefix %q", id, k.Prefix)
	}

	digits := id[len(k.Prefix):]
	if digits == "" {
		return 0, fmt.Errorf("identifier %q has no numeric suffix", id)
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("identifier %q has a malformed numeric suffix", id)
	}

	return n, nil
}
