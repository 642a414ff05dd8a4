// Package domain defines the data models and interfaces shared across
// courier. It holds plain types and contracts only; behaviour lives in the
// packages that implement them.
package domain
