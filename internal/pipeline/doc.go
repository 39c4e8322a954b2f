// Package pipeline orchestrates a merge run: clip discovery, the
// concurrent probe phase, the concurrent merge phase, and result
// aggregation.
//
// The two phases use independent bounded worker pools. The probe pool
// fans out wide because ffprobe calls are cheap and independent; the
// merge pool is narrow because encoding typically saturates a single
// hardware media engine. A phase barrier sits between them: merging
// needs every probe result before the first plan is built.
package pipeline
