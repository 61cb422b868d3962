// Package router selects which navigation tree to render for a given session
// state. The selection is a pure function and is re-evaluated on every session
// change, never cached.
package router

import "github.com/sefyapp/sefy/internal/session"

// Tree identifies one of the mutually exclusive navigation trees.
type Tree int

const (
	// TreeLoading renders a blocking progress indicator and no navigation.
	TreeLoading Tree = iota
	// TreeAuth is the unauthenticated tree (login and registration).
	TreeAuth
	// TreeAdmin is the administrator tree.
	TreeAdmin
	// TreeUser is the standard-user tree.
	TreeUser
)

// String returns the tree name for logs.
func (t Tree) String() string {
	switch t {
	case TreeLoading:
		return "loading"
	case TreeAuth:
		return "auth"
	case TreeAdmin:
		return "admin"
	case TreeUser:
		return "user"
	default:
		return "unknown"
	}
}

// Route maps a session snapshot to a navigation tree.
//
// A token whose profile fetch failed (token present, user absent) routes to
// the standard-user tree rather than an error screen. This favors optimistic
// access over hard failure; whether that is intentional fault tolerance or an
// oversight is pending product-owner confirmation, so the behavior is pinned
// here and by TestRouteDegradedSession.
func Route(snap session.Snapshot) Tree {
	switch {
	case snap.Loading:
		return TreeLoading
	case snap.Token == "":
		return TreeAuth
	case snap.User != nil && snap.User.EsAdmin:
		return TreeAdmin
	default:
		return TreeUser
	}
}
