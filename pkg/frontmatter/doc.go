// Package frontmatter splits Markdown files into a YAML frontmatter block
// and a body. Skills, slash commands and agent definitions all use this
// layout:
//
//	---
//	name: bonita-testing
//	description: Conventions for Bonita process integration tests
//	---
//
//	# Bonita testing
package frontmatter
