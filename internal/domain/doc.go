// Package domain defines core data models, error kinds and interfaces shared
// across fireplace. It contains plain types (records and keys), contracts
// (interfaces) and the error taxonomy only.
package domain
