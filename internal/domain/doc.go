// Package domain defines the core business entities of the Cultura
// application and their validation rules.
package domain
