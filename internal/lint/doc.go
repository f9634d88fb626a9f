// Package lint validates the Markdown assets that configure the assistant:
// skills (skills/<name>/SKILL.md), slash commands (commands/**/*.md) and
// agents (agents/*.md).
//
// Each file is split into YAML frontmatter and a Markdown body. Files are
// read concurrently and the issues are merged into a single
// [validator.Result] in path order, so output does not depend on
// scheduling.
package lint
