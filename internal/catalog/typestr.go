package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/provesql/provesql/internal/coltype"
)

var decimalPattern = regexp.MustCompile(`^decimal\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)$`)

// The zone segment is matched against the original spelling: zone names
// are case-sensitive.
var timestampPattern = regexp.MustCompile(`(?i)^timestamp\(\s*(second|millisecond|microsecond|nanosecond)\s*,\s*([^)]+)\)$`)

// ParseType parses the textual type spelling used by schema catalogs
// (CUE files, SQLite column declarations). The spellings round-trip with
// coltype.Type.String.
func ParseType(s string) (coltype.Type, error) {
	switch lowered := strings.ToLower(strings.TrimSpace(s)); lowered {
	case "boolean", "bool":
		return coltype.Boolean(), nil
	case "uint8":
		return coltype.Uint8(), nil
	case "tinyint":
		return coltype.TinyInt(), nil
	case "smallint":
		return coltype.SmallInt(), nil
	case "int", "integer":
		return coltype.Int(), nil
	case "bigint":
		return coltype.BigInt(), nil
	case "int128":
		return coltype.Int128(), nil
	case "scalar":
		return coltype.Scalar(), nil
	case "varchar", "text":
		return coltype.VarChar(), nil
	case "varbinary", "blob":
		return coltype.VarBinary(), nil
	default:
		if m := decimalPattern.FindStringSubmatch(lowered); m != nil {
			precision, err := strconv.Atoi(m[1])
			if err != nil {
				return coltype.Type{}, fmt.Errorf("catalog: bad decimal precision in %q", s)
			}
			scale, err := strconv.Atoi(m[2])
			if err != nil {
				return coltype.Type{}, fmt.Errorf("catalog: bad decimal scale in %q", s)
			}
			return coltype.NewDecimal(precision, scale)
		}
		if m := timestampPattern.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
			return coltype.TimestampTZ(parseUnit(strings.ToLower(m[1])), strings.TrimSpace(m[2])), nil
		}
		return coltype.Type{}, fmt.Errorf("catalog: unknown column type %q", s)
	}
}

func parseUnit(s string) coltype.TimeUnit {
	switch s {
	case "second":
		return coltype.UnitSecond
	case "millisecond":
		return coltype.UnitMillisecond
	case "microsecond":
		return coltype.UnitMicrosecond
	default:
		return coltype.UnitNanosecond
	}
}
