package schema

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/checkpoint-indexer/checkpoint/pkg/naming"
)

// Schema holds the entity object types served by the API together with the scalars and enums they use.
type Schema struct {
	entities    []*ast.Definition
	definitions map[string]*ast.Definition
}

func Load(path string) (*Schema, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s - %w", path, err)
	}
	return Parse(path, string(input))
}

// Parse reads entity type definitions from SDL. The built-in metadata and checkpoint entities are
// appended after the declared ones.
func Parse(name string, input string) (*Schema, error) {
	document, err := parser.ParseSchema(&ast.Source{
		Name:  name,
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	var result *multierror.Error
	if len(document.Extensions) > 0 {
		result = multierror.Append(result, fmt.Errorf("%w: type extensions", ErrUnsupportedDefinition))
	}
	if len(document.Schema) > 0 || len(document.SchemaExtension) > 0 {
		result = multierror.Append(result, fmt.Errorf("%w: schema definition", ErrUnsupportedDefinition))
	}

	definitions := append(ast.DefinitionList{}, document.Definitions...)
	definitions = append(definitions, metadataEntity(), checkpointEntity())

	s := &Schema{
		definitions: make(map[string]*ast.Definition, len(definitions)),
	}
	for _, definition := range definitions {
		if _, ok := builtinScalars[definition.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("%s: %w", definition.Name, ErrDuplicateType))
			continue
		}
		if _, ok := s.definitions[definition.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("%s: %w", definition.Name, ErrDuplicateType))
			continue
		}

		switch definition.Kind {
		case ast.Object:
			s.entities = append(s.entities, definition)
		case ast.Scalar, ast.Enum:
		default:
			result = multierror.Append(result, fmt.Errorf("%s: %w: %s", definition.Name, ErrUnsupportedDefinition, definition.Kind))
			continue
		}
		s.definitions[definition.Name] = definition
	}

	if err := s.validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) validate() error {
	var result *multierror.Error

	queryNames := make(map[string]string)
	for _, entity := range s.entities {
		for _, queryName := range []string{naming.SingleQueryName(entity.Name), naming.MultiQueryName(entity.Name)} {
			if owner, ok := queryNames[queryName]; ok {
				result = multierror.Append(result, fmt.Errorf("%s: %w: %s (%s)", entity.Name, ErrQueryNameConflict, queryName, owner))
				continue
			}
			queryNames[queryName] = entity.Name
		}

		idField := entity.Fields.ForName("id")
		if idField == nil || idField.Type.Elem != nil || !s.IsLeaf(idField.Type.Name()) {
			result = multierror.Append(result, fmt.Errorf("%s: %w", entity.Name, ErrIdFieldRequired))
		}

		for _, field := range entity.Fields {
			typeName := field.Type.Name()
			if !s.IsLeaf(typeName) && !s.IsEntity(typeName) {
				result = multierror.Append(result, fmt.Errorf("%s.%s: %w: %s", entity.Name, field.Name, ErrUnknownType, typeName))
			}
		}
	}

	return result.ErrorOrNil()
}

// Entities returns the entity object types in declaration order.
func (s *Schema) Entities() []*ast.Definition {
	return s.entities
}

func (s *Schema) Entity(name string) (*ast.Definition, bool) {
	definition, ok := s.definitions[name]
	if !ok || definition.Kind != ast.Object {
		return nil, false
	}
	return definition, true
}

func (s *Schema) Definition(name string) (*ast.Definition, bool) {
	definition, ok := s.definitions[name]
	return definition, ok
}

func (s *Schema) IsEntity(typeName string) bool {
	_, ok := s.Entity(typeName)
	return ok
}

// IsLeaf reports whether typeName is a scalar or an enum.
func (s *Schema) IsLeaf(typeName string) bool {
	if _, ok := builtinScalars[typeName]; ok {
		return true
	}
	definition, ok := s.definitions[typeName]
	return ok && (definition.Kind == ast.Scalar || definition.Kind == ast.Enum)
}

// DefaultEntity is the first declared entity, or the checkpoint entity when the schema declares none.
func (s *Schema) DefaultEntity() *ast.Definition {
	for _, entity := range s.entities {
		if !entity.BuiltIn {
			return entity
		}
	}
	entity, _ := s.Entity(CheckpointEntityName)
	return entity
}
