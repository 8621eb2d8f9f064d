// Package specification implements the query-object pattern: small composable
// filters a repository folds over its base query.
package specification

import "gorm.io/gorm"

type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
