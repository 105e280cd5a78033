// Package domain defines domain-level errors for the products feature.
package domain

import "errors"

// ErrProductNotFound indicates that no product exists with the given ID.
var ErrProductNotFound = errors.New("product not found")
