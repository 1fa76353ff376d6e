// Package domain contains the core value types of the word bank:
// word entries and the validation rules they must satisfy. It has no
// dependencies on storage, transport, or generation concerns.
package domain
