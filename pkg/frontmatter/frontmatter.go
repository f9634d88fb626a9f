package frontmatter

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

var (
	// ErrMissingFrontmatter is returned by MustParse when no frontmatter is found.
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnclosedFrontmatter indicates an opening delimiter without a closing one.
	ErrUnclosedFrontmatter = errors.New("missing closing frontmatter delimiter")
)

const delimiter = "---"

// Document is a Markdown file split at its frontmatter delimiters.
type Document struct {
	// Matter is the raw YAML between the delimiters. Nil when absent.
	Matter []byte
	// Body is everything after the closing delimiter line.
	Body []byte
	// BodyLine is the 1-based line number where Body starts.
	BodyLine int
}

// HasMatter reports whether the document had a frontmatter block.
func (d *Document) HasMatter() bool {
	return d.Matter != nil
}

// Split separates content into frontmatter and body. Content without an
// opening "---" line is returned entirely as body. CRLF line endings are
// accepted.
func Split(content []byte) (*Document, error) {
	lines := bytes.SplitAfter(content, []byte("\n"))
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return &Document{Body: content, BodyLine: 1}, nil
	}

	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			matter := content[len(lines[0]):offset]
			body := content[offset+len(lines[i]):]
			if matter == nil {
				matter = []byte{}
			}
			return &Document{Matter: matter, Body: body, BodyLine: i + 2}, nil
		}
		offset += len(lines[i])
	}

	return nil, ErrUnclosedFrontmatter
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, "\r\n")) == delimiter
}

// Parse reads r, decodes any frontmatter into matter and returns the body.
// Frontmatter is optional.
func Parse[T any](r io.Reader, matter *T) ([]byte, error) {
	doc, err := read(r)
	if err != nil {
		return nil, err
	}
	if err := doc.Decode(matter); err != nil {
		return nil, err
	}
	return doc.Body, nil
}

// MustParse is like Parse but fails with ErrMissingFrontmatter when the
// content has no frontmatter block.
func MustParse[T any](r io.Reader, matter *T) ([]byte, error) {
	doc, err := read(r)
	if err != nil {
		return nil, err
	}
	if !doc.HasMatter() {
		return nil, ErrMissingFrontmatter
	}
	if err := doc.Decode(matter); err != nil {
		return nil, err
	}
	return doc.Body, nil
}

// Decode unmarshals the frontmatter into v. It is a no-op without frontmatter.
func (d *Document) Decode(v any) error {
	if len(bytes.TrimSpace(d.Matter)) == 0 {
		return nil
	}
	return errors.Wrap(yaml.Unmarshal(d.Matter, v), "invalid YAML frontmatter")
}

func read(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading content")
	}
	return Split(content)
}
