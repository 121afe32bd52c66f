// Package client implements the authenticated session client for the GSCF
// study-data API.
//
// A Session is created by Connect, which derives the device identity once,
// performs the authentication handshake and stores the server-issued
// sequence counter and session token. Every subsequent call routes through a
// single dispatcher that advances the sequence, derives the per-call
// validation credential and posts a form-encoded request; see the read
// operations GetStudies, GetSubjectsForStudy, GetAssaysForStudy,
// GetSamplesForAssay and GetMeasurementDataForAssay and their Table
// variants.
//
// A Session is safe for concurrent use: the dispatcher holds the session
// lock across the full request round trip so validation credentials are
// computed and sent in sequence order. The library performs no retries and
// no caching; a failed call surfaces immediately and has still consumed one
// sequence slot.
package client
