package fixture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE []byte

//go:embed default.yaml
var defaultYAML []byte

// DefaultName is the name of the embedded demo fixture.
const DefaultName = "default"

// Default returns the embedded demo inventory.
// It panics if the embedded file is invalid, which tests guard against.
func Default() *Fixture {
	f, err := Parse(defaultYAML, ".yaml", "default.yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded default fixture: %v", err))
	}
	return f
}

// Load reads a fixture file. The format is chosen by extension:
// .yaml and .yml use strict YAML decoding, .cue is unified with the
// fixture schema.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "fixture not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: "read fixture", Err: err}
	}
	return Parse(data, filepath.Ext(path), path)
}

// Parse decodes fixture data in the format named by ext.
// filename is only used in error positions.
func Parse(data []byte, ext, filename string) (*Fixture, error) {
	var (
		f   *Fixture
		err error
	)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		f, err = parseYAML(data, filename)
	case ".cue":
		f, err = parseCUE(data, filename)
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupportedType,
			Path:    filename,
			Message: fmt.Sprintf("unsupported fixture extension %q (want .yaml, .yml or .cue)", ext),
		}
	}
	if err != nil {
		return nil, err
	}

	if err := validate(f); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Path: filename, Message: "invalid fixture", Err: err}
	}
	return f, nil
}

func parseYAML(data []byte, filename string) (*Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&f); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Path: filename, Message: "parse YAML", Err: err}
	}
	return &f, nil
}

func parseCUE(data []byte, filename string) (*Fixture, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "compile fixture schema", Err: err}
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Path: filename, Message: "compile CUE", Err: positioned(err)}
	}

	unified := schema.LookupPath(cue.ParsePath("#Fixture")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Path: filename, Message: "fixture does not match schema", Err: positioned(err)}
	}

	var f Fixture
	if err := unified.Decode(&f); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Path: filename, Message: "decode CUE", Err: positioned(err)}
	}
	return &f, nil
}

// positioned reduces a CUE error to its first error, prefixed with the
// source position when CUE reports one.
func positioned(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) == 0 || !positions[0].IsValid() {
		return err
	}
	pos := positions[0]
	return fmt.Errorf("%s:%d:%d: %s", pos.Filename(), pos.Line(), pos.Column(), first.Error())
}
