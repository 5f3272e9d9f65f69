// Package store provides abstractions for data persistence. Concrete
// implementations live under internal/platform.
package store
