// Package search implements the query-block partitioning, per-block
// pipeline, and dynamic worker scheduling of spec.md section 4.C8,
// grounded on lexicmap/cmd/search.go's token-bounded goroutine fan-out,
// restructured around block-pull scheduling instead of per-query
// dispatch. There is no separate output-draining goroutine: each worker
// emits a query's surviving matches as soon as that query is done, and
// the driver serializes those Emit calls with a mutex.
package search

import "github.com/gobio/blastcore/matchstore"

// Sink receives surviving matches, one Emit call per match, per spec.md
// section 6's "hands matches to the sink." Within a single worker,
// per-query match emission preserves hyper-sort order, except when the
// driver's taxonomic HSP merge is enabled: the merged records of a query
// are then emitted in no defined order. The overall output is not
// required to be stable w.r.t. input query order.
type Sink interface {
	Emit(qryID []byte, subjID []byte, m matchstore.Match) error
}
