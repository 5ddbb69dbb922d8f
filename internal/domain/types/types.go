// Package types contains common types used across the application.
package types

import "strings"

// Role is a builder's preferred position on a team.
type Role string

// Known roles.
const (
	RoleDeveloper Role = "developer"
	RoleDesigner  Role = "designer"
	RolePM        Role = "pm"
)

// ParseRole normalizes a raw role string. Unknown values are preserved
// lowercased so that role matching stays a plain equality check; callers
// that need the closed set can test with Known().
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether the role is one of the recognized values.
func (r Role) Known() bool {
	switch r {
	case RoleDeveloper, RoleDesigner, RolePM:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// Availability is a builder's time-commitment category.
type Availability string

// Availability categories.
const (
	AvailabilityFullTime Availability = "full-time"
	AvailabilityPartTime Availability = "part-time"
	AvailabilityWeekend  Availability = "weekend"
)

// ParseAvailability normalizes a raw availability string. Unrecognized
// input defaults to full-time, the original system's fallback for an
// unspecified availability.
func ParseAvailability(s string) Availability {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "part-time", "parttime":
		return AvailabilityPartTime
	case "weekend":
		return AvailabilityWeekend
	default:
		return AvailabilityFullTime
	}
}

func (a Availability) String() string { return string(a) }

// Severity grades a plagiarism flag.
type Severity string

// Severity levels.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) String() string { return string(s) }

// MatchType records where a similarity match came from.
type MatchType string

// Match sources.
const (
	MatchDescription MatchType = "description"
	MatchPublicRepo  MatchType = "public_repo"
)

func (m MatchType) String() string { return string(m) }
