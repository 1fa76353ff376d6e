// Package store defines the persistence boundary for word lists.
package store
