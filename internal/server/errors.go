package server

import "errors"

// ErrInvalidSchedule is returned by New when the purge schedule is not a
// valid cron expression.
var ErrInvalidSchedule = errors.New("server: invalid purge schedule")
