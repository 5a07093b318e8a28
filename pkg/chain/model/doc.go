// Package model provides the data structures shared by the chain package and its options.
// It defines the run state machine, the information describing a run and a link,
// and the hooks every chain option implements.
package model
