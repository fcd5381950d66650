// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for cloning repositories, validating working
// copies, reading and writing repository configuration, and resolving hooks
// directories, with every operation delegated to the external git binary.
package gitrepo
