// Package service implements the business operations that sit between
// the HTTP surface and the repositories: the external import
// reconciler and the dashboard aggregates.
package service
