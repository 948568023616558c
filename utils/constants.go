// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis keys of revoked token ids.
const AuthCachePrefix = "auth:revoked:"

// ResetTokenPrefix prefixes pending password reset tokens, keyed by username.
const ResetTokenPrefix = "reset:"

// ResetTokenTTL bounds how long a password reset link stays usable.
const ResetTokenTTL = 15 * time.Minute

// WeeklyAvailabilityKey caches the serialized weekly ranges.
const WeeklyAvailabilityKey = "availability:weekly"

// WeeklyAvailabilityTTL is a ceiling; writes invalidate the key immediately.
const WeeklyAvailabilityTTL = 10 * time.Minute
