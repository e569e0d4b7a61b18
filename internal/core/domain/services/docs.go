// Package services contains stateless domain services that operate across
// aggregates: the CRBT tariff calculator and the duplicate tracking-code
// detector. Both are pure computations; persistence and rate lookup stay
// with the application layer.
package services
