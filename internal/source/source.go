// Package source provides page-dump inputs for the reconciliation
// engine. A source walks a document page by page, handing each page's
// extracted tables to the caller in order.
package source

import (
	"context"

	"github.com/tablefuse/tablefuse/internal/model"
)

// Source walks a document's pages in order.
type Source interface {
	// Walk calls fn once per page, in page order, with the page's
	// tables. Returning an error from fn stops the walk.
	Walk(ctx context.Context, fn func(pageIndex int, tables []model.Table) error) error
}
