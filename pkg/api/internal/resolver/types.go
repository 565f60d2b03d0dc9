package resolver

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	gqlast "github.com/vektah/gqlparser/v2/ast"
)

func builtinScalar(name string) (*graphql.Scalar, bool) {
	switch name {
	case "ID":
		return graphql.ID, true
	case "String":
		return graphql.String, true
	case "Int":
		return graphql.Int, true
	case "Float":
		return graphql.Float, true
	case "Boolean":
		return graphql.Boolean, true
	default:
		return nil, false
	}
}

// newCustomScalar serves a declared scalar in its textual form, which keeps values such as
// 256 bit integers intact.
func newCustomScalar(definition *gqlast.Definition) *graphql.Scalar {
	return graphql.NewScalar(graphql.ScalarConfig{
		Name:        definition.Name,
		Description: definition.Description,
		Serialize: func(value interface{}) interface{} {
			if b, ok := value.([]byte); ok {
				return string(b)
			}
			return fmt.Sprint(value)
		},
		ParseValue: func(value interface{}) interface{} {
			return fmt.Sprint(value)
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			switch v := valueAST.(type) {
			case *ast.StringValue:
				return v.Value
			case *ast.IntValue:
				return v.Value
			case *ast.FloatValue:
				return v.Value
			default:
				return nil
			}
		},
	})
}

func newEnum(definition *gqlast.Definition) *graphql.Enum {
	values := graphql.EnumValueConfigMap{}
	for _, value := range definition.EnumValues {
		values[value.Name] = &graphql.EnumValueConfig{
			Value:       value.Name,
			Description: value.Description,
		}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:        definition.Name,
		Description: definition.Description,
		Values:      values,
	})
}
