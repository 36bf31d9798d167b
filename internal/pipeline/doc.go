// Package pipeline streams FASTA chunks from one or more sources through a
// bounded pool of counting workers and reduces their private counters into
// a single result.
//
// Sources are read one after another on a single goroutine; chunks of
// excluded contigs are parsed and validated but never reach a worker.
// Nothing is returned unless every source was read to the end.
package pipeline
