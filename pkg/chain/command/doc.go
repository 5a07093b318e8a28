// Package command provides the mutable context threaded through every link of a chain.
//
// A Command is created once per pipeline-creation attempt. It carries the pipeline descriptor,
// the raw CI configuration, the parsed job definitions and the seeds built from them, together
// with the errors and warnings accumulated by the links. A Command is owned by exactly one chain
// run: concurrent attempts must each build their own.
package command
