package compiler

import (
	"strconv"
	"strings"

	"github.com/provesql/provesql/internal/coltype"
	"github.com/provesql/provesql/internal/logical"
	"github.com/provesql/provesql/internal/pexpr"
)

// Placeholder translation. The analyzer spells placeholders as "$1",
// "$2", … with an optional declared type. A placeholder with no declared
// type is only compilable when a surrounding cast supplies one; the cast
// path binds the destination type and calls translateTypedPlaceholder
// directly.

func translatePlaceholder(ph *logical.Placeholder) (*pexpr.Placeholder, error) {
	if ph.Type == nil {
		return nil, compileErr(CodeInvalidPlaceholder, ph.ID,
			"untyped placeholder is not wrapped in a cast")
	}
	typ, err := mapDataType(*ph.Type)
	if err != nil {
		return nil, err
	}
	return translateTypedPlaceholder(ph.ID, typ)
}

func translateTypedPlaceholder(id string, typ coltype.Type) (*pexpr.Placeholder, error) {
	text, ok := strings.CutPrefix(id, "$")
	if !ok {
		return nil, compileErr(CodeInvalidPlaceholder, id,
			"placeholder id must be $N")
	}
	index, err := strconv.Atoi(text)
	if err != nil || index < 1 {
		return nil, compileErr(CodeInvalidPlaceholder, id,
			"placeholder index must be a positive integer")
	}
	return pexpr.NewPlaceholder(index, typ)
}
