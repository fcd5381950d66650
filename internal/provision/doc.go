// Package provision applies Khan Academy conventions to git working copies.
//
// It exposes CommandBuilder for the kaclone command and Service for the
// provisioning steps themselves: setting the committer email, installing the
// commit message lint hook, linking the commit message template and shared
// gitconfig extras, and installing master branch protection hooks. Hook
// templates ship inside the binary and are installed through one shared
// copy-and-mark-executable primitive.
package provision
