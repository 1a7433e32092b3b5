// SPDX-License-Identifier: Apache-2.0

package lexicon

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed lexicon.cue
var schemaSource string

// cue values are not safe for concurrent use; validation is serialized.
var schemaMu sync.Mutex

var compileSchema = sync.OnceValues(func() (cue.Value, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("lexicon.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile lexicon schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Lexicon"))
	if err := def.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("lookup #Lexicon: %w", err)
	}
	return def, nil
})

// Validate checks a YAML lexicon document against the CUE schema.
func Validate(name string, data []byte) error {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	def, err := compileSchema()
	if err != nil {
		return err
	}

	file, err := cueyaml.Extract(name, data)
	if err != nil {
		return fmt.Errorf("failed to read lexicon %q: %w", name, err)
	}
	doc := def.Context().BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("failed to build lexicon %q: %w", name, err)
	}
	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("lexicon %q does not match schema: %w", name, err)
	}
	return nil
}
