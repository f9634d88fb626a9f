// Package validator collects and reports issues found while linting
// Markdown assets.
//
// An [Issue] is tied to a file and optionally a frontmatter field. A
// [Result] aggregates issues from many files and can be sorted into a stable
// order before a [Reporter] renders it as coloured text or JSON.
//
//	var res validator.Result
//	res.AddError("skills/foo/SKILL.md", "name", "is required", nil)
//	res.Sort()
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(&res)
package validator
