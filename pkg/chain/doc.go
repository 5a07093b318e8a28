// Package chain provides a sequential, interruptible chain for building a CI pipeline.
//
// A chain is an ordered list of links applied to one shared command. Each link inspects and
// mutates the command in place, strictly in the order the links were added: later links depend
// on what earlier links produced, so there is no reordering and no parallelism within a run.
//
// A run stops early in two ways. A link may ask to break once it is performed: the remaining links
// are skipped and the run is reported as broken, which is a partial success since the command is
// still usable downstream. A link may also return an error: the remaining links are skipped, the
// run is reported as failed and the error is returned to the caller as is. The command may then be
// partially mutated and must be discarded.
//
// Options observe every run through hooks. The measure, drawer, logging, tracing and metrics
// packages provide ready to use options.
//
// Independent commands can be run concurrently with RunAll, each command being owned by a single run.
package chain
