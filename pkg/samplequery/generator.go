// Package samplequery builds the human readable example query shown in the GraphiQL editor.
package samplequery

import (
	"bytes"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/checkpoint-indexer/checkpoint/pkg/naming"
	"github.com/checkpoint-indexer/checkpoint/pkg/schema"
)

type Generator struct {
	schema   *schema.Schema
	pageSize int
	maxDepth int
}

// NewGenerator returns a generator requesting pageSize records and nesting at most maxDepth
// entities, 0 = no depth limit.
func NewGenerator(s *schema.Schema, pageSize int, maxDepth int) *Generator {
	return &Generator{
		schema:   s,
		pageSize: pageSize,
		maxDepth: maxDepth,
	}
}

// Generate returns a query selecting a page of entity records with every field of the entity.
//
// Fields of an entity type are expanded recursively. A field whose type already appears on the
// path from the root is left out, as is any field that would be nested deeper than maxDepth, so
// circular schemas still produce a finite query.
func (g *Generator) Generate(entity *ast.Definition) string {
	root := &ast.Field{
		Name: naming.MultiQueryName(entity.Name),
		Arguments: ast.ArgumentList{
			{
				Name: "first",
				Value: &ast.Value{
					Kind: ast.IntValue,
					Raw:  strconv.Itoa(g.pageSize),
				},
			},
		},
		SelectionSet: g.selectionSet(entity, 1, map[string]bool{entity.Name: true}),
	}

	document := &ast.QueryDocument{
		Operations: ast.OperationList{
			{
				Operation:    ast.Query,
				SelectionSet: ast.SelectionSet{root},
			},
		},
	}

	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent("  ")).FormatQueryDocument(document)
	return buf.String()
}

func (g *Generator) selectionSet(definition *ast.Definition, depth int, path map[string]bool) ast.SelectionSet {
	var selectionSet ast.SelectionSet
	for _, field := range definition.Fields {
		typeName := field.Type.Name()

		if g.schema.IsLeaf(typeName) {
			selectionSet = append(selectionSet, &ast.Field{Name: field.Name})
			continue
		}

		child, ok := g.schema.Entity(typeName)
		if !ok || path[typeName] {
			continue
		}
		if g.maxDepth > 0 && depth >= g.maxDepth {
			continue
		}

		path[typeName] = true
		childSelectionSet := g.selectionSet(child, depth+1, path)
		delete(path, typeName)

		if len(childSelectionSet) == 0 {
			continue
		}
		selectionSet = append(selectionSet, &ast.Field{
			Name:         field.Name,
			SelectionSet: childSelectionSet,
		})
	}
	return selectionSet
}
