package schema

import (
	"github.com/vektah/gqlparser/v2/ast"
)

const (
	MetadataEntityName   = "_Metadata"
	CheckpointEntityName = "_Checkpoint"
)

var builtinScalars = map[string]struct{}{
	"ID":      {},
	"String":  {},
	"Int":     {},
	"Float":   {},
	"Boolean": {},
}

// metadataEntity maps to the rows of the indexer metadata store.
func metadataEntity() *ast.Definition {
	return &ast.Definition{
		Kind:        ast.Object,
		Name:        MetadataEntityName,
		Description: "Core metadata values used internally by Checkpoint",
		BuiltIn:     true,
		Fields: ast.FieldList{
			{
				Name:        "id",
				Description: "example: last_indexed_block",
				Type:        ast.NonNullNamedType("ID", nil),
			},
			{
				Name: "value",
				Type: ast.NamedType("String", nil),
			},
		},
	}
}

// checkpointEntity maps to the rows of the checkpoints store, one per contract and block with a known event.
func checkpointEntity() *ast.Definition {
	return &ast.Definition{
		Kind:        ast.Object,
		Name:        CheckpointEntityName,
		Description: "Contract and Block where its event is found.",
		BuiltIn:     true,
		Fields: ast.FieldList{
			{
				Name:        "id",
				Description: "id computed as last 5 bytes of sha256(contract+block)",
				Type:        ast.NonNullNamedType("ID", nil),
			},
			{
				Name: "block_number",
				Type: ast.NonNullNamedType("Int", nil),
			},
			{
				Name: "contract_address",
				Type: ast.NonNullNamedType("String", nil),
			},
		},
	}
}
