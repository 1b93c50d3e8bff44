package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/vytor/brainboost/internal/models"
)

//go:embed content/schema.json content/default.json
var content embed.FS

const schemaURL = "schema://content-pack.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Pack is the on-disk content format: lessons and questions in one document.
type Pack struct {
	Lessons   []models.Lesson   `json:"lessons"`
	Questions []models.Question `json:"questions"`
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := content.ReadFile("content/schema.json")
		if err != nil {
			schemaErr = fmt.Errorf("read schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// LoadPack reads a content pack, validates it against the pack schema and
// checks cross-references the schema cannot express.
func LoadPack(r io.Reader) (*Pack, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("content pack failed schema validation: %w", err)
	}

	var p Pack
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode content pack: %w", err)
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return &p, nil
}

func LoadPackFile(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content pack: %w", err)
	}
	defer f.Close()
	return LoadPack(f)
}

// DefaultPack returns the content bundled with the binary.
func DefaultPack() (*Pack, error) {
	f, err := content.Open("content/default.json")
	if err != nil {
		return nil, fmt.Errorf("open default pack: %w", err)
	}
	defer f.Close()
	return LoadPack(f)
}

func (p *Pack) Catalog() *Catalog {
	return New(p.Lessons, p.Questions)
}

func (p *Pack) check() error {
	var errs []error

	lessonIDs := make(map[string]bool, len(p.Lessons))
	for _, l := range p.Lessons {
		if lessonIDs[l.ID] {
			errs = append(errs, fmt.Errorf("duplicate lesson id %q", l.ID))
		}
		lessonIDs[l.ID] = true
	}

	questionIDs := make(map[string]bool, len(p.Questions))
	for _, q := range p.Questions {
		if questionIDs[q.ID] {
			errs = append(errs, fmt.Errorf("duplicate question id %q", q.ID))
		}
		questionIDs[q.ID] = true

		found := false
		for _, o := range q.Options {
			if o.ID == q.CorrectOptionID {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("question %q: correct option %q is not one of its options", q.ID, q.CorrectOptionID))
		}
	}

	return errors.Join(errs...)
}
