// Package paths resolves the file locations bonitahooks reads and writes:
// its own configuration directories (XDG-aware) and the per-project
// assistant settings file that hook wiring is installed into.
package paths
