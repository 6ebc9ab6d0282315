package crystal

import (
	"strings"

	"github.com/teranos/tscr/ast"
)

// TypeConverterConfig configures how TypeScript annotations become Crystal types.
type TypeConverterConfig struct {
	// TypeMapping maps TypeScript type names to Crystal types.
	// Names not listed pass through unchanged (generic parameters, user types).
	TypeMapping map[string]string

	// ArrayFormat formats an array type given the element type
	ArrayFormat func(elemType string) string

	// GenericFormat formats a generic reference given its name and arguments
	GenericFormat func(name string, args []string) string

	// UnionSeparator joins the members of a union
	UnionSeparator string
}

// TypeMapping defines how TypeScript types map to Crystal types
var TypeMapping = map[string]string{
	"number":    "Num",
	"string":    "String",
	"boolean":   "Bool",
	"void":      "Nil",
	"undefined": "Nil",
	"null":      "Nil",
	"never":     "NoReturn",
	"any":       "TsAny",
	"unknown":   "TsAny",
	"i8":        "Int8",
	"i16":       "Int16",
	"i32":       "Int32",
	"i64":       "Int64",
	"i128":      "Int128",
	"u8":        "UInt8",
	"u16":       "UInt16",
	"u32":       "UInt32",
	"u64":       "UInt64",
	"u128":      "UInt128",
	"f32":       "Float32",
	"f64":       "Float64",
	"Error":     "Exception",
}

// ArrayType is the runtime container every TypeScript array becomes.
const ArrayType = "TsArray"

var typeConverterConfig = &TypeConverterConfig{
	TypeMapping:   TypeMapping,
	ArrayFormat:   func(elem string) string { return ArrayType + "(" + elem + ")" },
	GenericFormat: func(name string, args []string) string { return name + "(" + strings.Join(args, ", ") + ")" },
	UnionSeparator: " | ",
}

// MapType converts a TypeScript annotation to a Crystal type expression.
func MapType(t *ast.TypeRef) (string, error) {
	return convertType(t, ast.Pos{}, typeConverterConfig)
}

// mapTypeAt is MapType with the position of the annotated node attached to errors.
func mapTypeAt(t *ast.TypeRef, pos ast.Pos) (string, error) {
	return convertType(t, pos, typeConverterConfig)
}

func convertType(t *ast.TypeRef, pos ast.Pos, config *TypeConverterConfig) (string, error) {
	if t == nil {
		return "", &TypeMappingError{Pos: pos, Annotation: "<nil>", Detail: "annotation is missing"}
	}

	switch t.Kind {
	case ast.TypeName:
		if t.Name == "" {
			return "", &TypeMappingError{Pos: pos, Annotation: t.String(), Detail: "type name is empty"}
		}
		if mapped, ok := config.TypeMapping[t.Name]; ok {
			return mapped, nil
		}
		// Generic parameter in scope or a user type with the same name in both languages
		return t.Name, nil

	case ast.TypeArray:
		if t.Elem == nil {
			return "", &TypeMappingError{Pos: pos, Annotation: "[]", Detail: "array annotation has no element type"}
		}
		elem, err := convertType(t.Elem, pos, config)
		if err != nil {
			return "", err
		}
		return config.ArrayFormat(elem), nil

	case ast.TypeReference:
		if t.Name == "" {
			return "", &TypeMappingError{Pos: pos, Annotation: t.String(), Detail: "generic reference has no name"}
		}
		if t.Name == "Array" {
			if len(t.Args) != 1 {
				return "", &TypeMappingError{Pos: pos, Annotation: t.String(), Detail: "Array takes exactly one type argument"}
			}
			return convertType(&ast.TypeRef{Kind: ast.TypeArray, Elem: t.Args[0]}, pos, config)
		}
		if len(t.Args) == 0 {
			return convertType(&ast.TypeRef{Kind: ast.TypeName, Name: t.Name}, pos, config)
		}
		args, err := convertTypes(t.Args, pos, config)
		if err != nil {
			return "", err
		}
		return config.GenericFormat(t.Name, args), nil

	case ast.TypeUnion:
		if len(t.Args) < 2 {
			return "", &TypeMappingError{Pos: pos, Annotation: t.String(), Detail: "union needs at least two members"}
		}
		members, err := convertTypes(t.Args, pos, config)
		if err != nil {
			return "", err
		}
		return strings.Join(members, config.UnionSeparator), nil

	default:
		return "", &TypeMappingError{Pos: pos, Annotation: t.String(), Detail: "unknown annotation shape " + t.Kind.String()}
	}
}

func convertTypes(refs []*ast.TypeRef, pos ast.Pos, config *TypeConverterConfig) ([]string, error) {
	out := make([]string, len(refs))
	for i, r := range refs {
		s, err := convertType(r, pos, config)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// elementType returns the element annotation of an array annotation, or nil.
func elementType(t *ast.TypeRef) *ast.TypeRef {
	if t == nil {
		return nil
	}
	switch {
	case t.Kind == ast.TypeArray:
		return t.Elem
	case t.Kind == ast.TypeReference && t.Name == "Array" && len(t.Args) == 1:
		return t.Args[0]
	}
	return nil
}
