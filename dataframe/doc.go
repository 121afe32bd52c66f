// Package dataframe reshapes GSCF record lists into tables indexed by token.
//
// A Table keeps its row index in first-occurrence order and its columns in
// first-seen order, so converting the same records always yields the same
// table. The measurement response shape, a mapping from token to field
// mapping, has its own entry point (FromMeasurements) that flattens the
// mapping with rows ordered by ascending token before the general reshape.
//
// Whether a client session hands out tables at all is decided at session
// construction via the dataframe capability flag; see the client package.
package dataframe
