// Package builtin implements the stock transforms: string, cssmin, docstring,
// indent, stringify, dataurl, eval, markdown, parse, trim, plus yaml and lua.
//
// Transforms are built from an explicit Options value, so two registries can
// carry different minifier or sandbox settings side by side.
//
// Input coercion, per transform:
//
//	string     Bytes are decoded; Text and JSON pass through.
//	dataurl    Bytes are encoded as-is; Text and JSON are UTF-8 encoded.
//	eval, lua  the underlying Go value is bound: string, []byte or parsed data.
//	stringify  Text and Bytes are encoded as JSON strings, JSON as itself.
//	others     the value's text form (content.Value.String) is used.
package builtin
