// Package quota implements the per-user daily request quota consumed before
// every model call.
//
// Both gates increment and check in one atomic step, so two concurrent
// requests from the same user can never both take the last slot.
package quota

import (
	"context"
	"strings"
	"time"
)

// AnonymousUser is the key used for requests without a user id.
const AnonymousUser = "anonymous"

// Gate decides whether user may spend one request on the day of now.
// A true result means the slot has already been consumed.
type Gate interface {
	Consume(ctx context.Context, user string, now time.Time) (bool, error)
}

// Day returns the quota window key for now, in now's location.
func Day(now time.Time) string {
	return now.Format(time.DateOnly)
}

func userKey(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return AnonymousUser
	}
	return user
}

// untilWindowEnd returns how long the counter for now's day must live: the
// rest of the day plus an hour of slack for clock skew between callers.
func untilWindowEnd(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now) + time.Hour
}
