// Package kernel contains shared value objects used across the domain
// model: UUID identifiers and fixed-precision Money amounts. Both are
// immutable, validated at construction, and safe for concurrent use.
package kernel
