// SPDX-License-Identifier: MPL-2.0

package recipe

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/filewave/fwtool/internal/issue"
	"github.com/filewave/fwtool/internal/processor"
	"github.com/filewave/fwtool/pkg/cueutil"
)

const (
	// CUEExt is the extension of CUE recipes.
	CUEExt = ".cue"
	// TOMLExt is the extension of TOML recipes.
	TOMLExt = ".toml"
)

//go:embed recipe_schema.cue
var recipeSchema []byte

var (
	// ErrUnsupportedFormat is returned for recipe files that are neither CUE nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported recipe format")
	// ErrMalformedOverride is returned for an override without a '='.
	ErrMalformedOverride = errors.New("override must have the form KEY=VALUE")
)

// Load reads the recipe at path into an Env.
func Load(path string) (processor.Env, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read recipe").
			WithResource(path).
			WithIssue(issue.RecipeParseErrorID).
			Wrap(err).
			BuildError()
	}

	var env processor.Env
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case CUEExt:
		env, err = parseCUE(data, path)
	case TOMLExt:
		env, err = parseTOML(data, path)
	default:
		err = fmt.Errorf("%w: %q (want %s or %s)", ErrUnsupportedFormat, ext, CUEExt, TOMLExt)
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse recipe").
			WithResource(path).
			WithIssue(issue.RecipeParseErrorID).
			WithSuggestion("Recipes are flat documents of input names to strings, booleans or numbers").
			Wrap(err).
			BuildError()
	}
	return env, nil
}

func parseCUE(data []byte, filename string) (processor.Env, error) {
	res, err := cueutil.ParseAndDecode[map[string]any](recipeSchema, data, "#Inputs",
		cueutil.WithFilename(filename),
	)
	if err != nil {
		return nil, err
	}
	return processor.Env(*res.Value), nil
}

func parseTOML(data []byte, filename string) (processor.Env, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s", filename, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	env := make(processor.Env, len(doc))
	for k, v := range doc {
		switch v.(type) {
		case string, bool, int64, float64:
			env[k] = v
		default:
			return nil, fmt.Errorf("%s: %s: value must be a string, boolean or number, got %T", filename, k, v)
		}
	}
	return env, nil
}

// ParseOverrides parses KEY=VALUE pairs. Values stay strings; the value may
// itself contain '='.
func ParseOverrides(pairs []string) (processor.Env, error) {
	env := make(processor.Env, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedOverride, p)
		}
		env[key] = value
	}
	return env, nil
}

// Layer merges envs in increasing precedence: later layers win. Nil layers
// are skipped.
func Layer(layers ...processor.Env) processor.Env {
	env := processor.Env{}
	for _, l := range layers {
		env.Merge(l)
	}
	return env
}
