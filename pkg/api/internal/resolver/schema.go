package resolver

import (
	"github.com/graphql-go/graphql"
	gqlast "github.com/vektah/gqlparser/v2/ast"

	"github.com/checkpoint-indexer/checkpoint/pkg/naming"
	"github.com/checkpoint-indexer/checkpoint/pkg/schema"
	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

type Config struct {
	Schema          *schema.Schema
	Store           store.Store
	Dialect         store.Dialect
	DefaultPageSize int
	MaxPageSize     int
}

type schemaBuilder struct {
	config  Config
	objects map[string]*graphql.Object
	leaves  map[string]graphql.Output
}

// NewExecutableSchema exposes every entity through a single record query resolved by the request's
// loaders and a list query reading one page of records.
func NewExecutableSchema(config Config) (graphql.Schema, error) {
	b := &schemaBuilder{
		config:  config,
		objects: make(map[string]*graphql.Object),
		leaves:  make(map[string]graphql.Output),
	}

	for _, entity := range config.Schema.Entities() {
		b.objects[entity.Name] = b.newObject(entity)
	}

	queryFields := graphql.Fields{}
	for _, entity := range config.Schema.Entities() {
		object := b.objects[entity.Name]

		queryFields[naming.SingleQueryName(entity.Name)] = &graphql.Field{
			Type:        object,
			Description: entity.Description,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.ID),
				},
			},
			Resolve: resolveEntity(entity.Name),
		}

		queryFields[naming.MultiQueryName(entity.Name)] = &graphql.Field{
			Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(object))),
			Description: entity.Description,
			Args: graphql.FieldConfigArgument{
				"first": &graphql.ArgumentConfig{
					Type:         graphql.Int,
					DefaultValue: config.DefaultPageSize,
				},
				"skip": &graphql.ArgumentConfig{
					Type:         graphql.Int,
					DefaultValue: 0,
				},
			},
			Resolve: b.resolveEntities(entity.Name),
		}
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	})
}

func (b *schemaBuilder) newObject(entity *gqlast.Definition) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name:        entity.Name,
		Description: entity.Description,
		// fields are built lazily since entities may reference each other in cycles
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			fields := graphql.Fields{}
			for _, field := range entity.Fields {
				fields[field.Name] = b.newField(field)
			}
			return fields
		}),
	})
}

func (b *schemaBuilder) newField(field *gqlast.FieldDefinition) *graphql.Field {
	typeName := field.Type.Name()

	resolve := resolveColumn(field.Name)
	if b.config.Schema.IsEntity(typeName) {
		if field.Type.Elem != nil {
			resolve = resolveReferences(field.Name, typeName)
		} else {
			resolve = resolveReference(field.Name, typeName)
		}
	}

	return &graphql.Field{
		Type:        b.outputType(field.Type),
		Description: field.Description,
		Resolve:     resolve,
	}
}

func (b *schemaBuilder) outputType(t *gqlast.Type) graphql.Output {
	var output graphql.Output
	if t.Elem != nil {
		output = graphql.NewList(b.outputType(t.Elem))
	} else {
		output = b.namedType(t.NamedType)
	}

	if t.NonNull {
		output = graphql.NewNonNull(output)
	}
	return output
}

func (b *schemaBuilder) namedType(name string) graphql.Output {
	if object, ok := b.objects[name]; ok {
		return object
	}
	if scalar, ok := builtinScalar(name); ok {
		return scalar
	}
	if leaf, ok := b.leaves[name]; ok {
		return leaf
	}

	// the schema package rejects unknown types, anything else left is a declared scalar or enum
	definition, _ := b.config.Schema.Definition(name)
	var leaf graphql.Output
	if definition.Kind == gqlast.Enum {
		leaf = newEnum(definition)
	} else {
		leaf = newCustomScalar(definition)
	}
	b.leaves[name] = leaf
	return leaf
}
