// Package seed provides the candidate entities of a pipeline.
//
// A seed knows the attributes of the entity it would create and whether that entity is excluded
// from the pipeline in a given context. Seeds are pure: they never change after construction and
// never touch the command they are built for.
package seed
