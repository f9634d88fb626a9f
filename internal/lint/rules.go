package lint

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/thoreinstein/bonitahooks/internal/validator"
	"github.com/thoreinstein/bonitahooks/pkg/frontmatter"
)

// maxNameLength is the maximum allowed length for skill names.
const maxNameLength = 64

// nameRegex validates names: lowercase alphanumeric, single hyphens allowed
// between segments, no start/end hyphen, no consecutive hyphens.
var nameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// matter is the frontmatter shared by every asset kind.
type matter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// parsed is a split and decoded asset. A nil parsed means the file could not
// be split or decoded and an error has already been recorded.
type parsed struct {
	doc    *frontmatter.Document
	matter matter
}

func parse(path string, content []byte, res *validator.Result) *parsed {
	doc, err := frontmatter.Split(content)
	if err != nil {
		res.AddError(path, "", "frontmatter delimiter is not closed", nil)
		return nil
	}

	var m matter
	if err := doc.Decode(&m); err != nil {
		res.AddError(path, "", err.Error(), nil)
		return nil
	}
	return &parsed{doc: doc, matter: m}
}

func lintSkill(path string, content []byte, res *validator.Result) {
	p := parse(path, content, res)
	if p == nil {
		return
	}
	if !p.doc.HasMatter() {
		res.AddError(path, "", "frontmatter is required", nil)
		return
	}

	name := p.matter.Name
	switch {
	case name == "":
		res.AddError(path, "name", "is required", nil)
	default:
		if len(name) > maxNameLength {
			res.AddError(path, "name", "exceeds maximum length of 64 characters", name)
		}
		if msg := nameProblem(name); msg != "" {
			res.AddError(path, "name", msg, name)
		}
		if dir := filepath.Base(filepath.Dir(path)); dir != name {
			res.AddError(path, "name", "must match directory name "+dir, name)
		}
	}

	checkDescription(path, p.matter.Description, validator.SeverityError, res)

	if !hasHeading(p.doc.Body) {
		res.AddWarning(path, "", "body has no Markdown heading", nil)
	}
}

func lintCommand(path string, content []byte, res *validator.Result) {
	p := parse(path, content, res)
	if p == nil {
		return
	}

	checkDescription(path, p.matter.Description, validator.SeverityWarning, res)

	if len(bytes.TrimSpace(p.doc.Body)) == 0 {
		res.AddError(path, "", "body is empty", nil)
	}
}

func lintAgent(path string, content []byte, res *validator.Result) {
	p := parse(path, content, res)
	if p == nil {
		return
	}

	if p.matter.Name == "" {
		res.AddError(path, "name", "is required", nil)
	}

	checkDescription(path, p.matter.Description, validator.SeverityWarning, res)
}

func checkDescription(path, description string, missing validator.Severity, res *validator.Result) {
	switch {
	case description == "":
		res.Add(missing, path, "description", "is required", nil)
	case strings.TrimSpace(description) == "":
		res.Add(missing, path, "description", "cannot be only whitespace", description)
	}
}

// nameProblem returns why name is not kebab-case, or "" when it is.
func nameProblem(name string) string {
	if nameRegex.MatchString(name) {
		return ""
	}
	switch {
	case strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-"):
		return "cannot start or end with a hyphen"
	case strings.Contains(name, "--"):
		return "cannot contain consecutive hyphens"
	case strings.ToLower(name) != name:
		return "must be lowercase"
	default:
		return "must be lowercase alphanumeric with single hyphens between segments"
	}
}

// hasHeading reports whether body contains at least one Markdown heading.
func hasHeading(body []byte) bool {
	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.Heading); ok {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
