// Package links provides the links building a CI pipeline from its configuration.
//
// The default chain skips the pipeline when the commit asks for it, parses the configuration
// into job definitions, removes the jobs a chat or package push pipeline must not run and
// populates the command with the stage seeds that survive.
//
// Links are registered by name so a chain can be assembled from configuration.
package links
