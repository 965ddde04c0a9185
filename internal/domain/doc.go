// Package domain defines the core catalog entities and interfaces for cinetech.
//
// This package contains the domain models (Movie, Category, ShowRecord),
// the repository interfaces that define the contract for data access, and
// the shared error taxonomy. All interfaces accept context for
// cancellation support.
package domain
