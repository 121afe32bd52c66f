// Package gscf contains the domain core shared by all go-gscf packages:
// the Record type returned by the study-data read operations, the device
// identity and per-call validation digests of the GSCF API authentication
// scheme, and the error taxonomy surfaced by the client.
//
// The package performs no I/O. Session management and HTTP dispatch live in
// the client package; tabular reshaping lives in the dataframe package.
package gscf
