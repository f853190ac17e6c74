package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/provesql/provesql/internal/catalog"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeBadSchema   = "E008" // Malformed schema catalog
	ErrCodeBadPlan     = "E009" // Malformed plan file
)

// LoadError represents an error that occurred while loading a schema
// catalog or plan file.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCatalog loads a schema catalog from a directory of CUE files. The
// catalog format is one "tables" struct whose fields are table names,
// each carrying an ordered "columns" list of {name, type} pairs:
//
//	tables: orders: columns: [
//		{name: "id", type: "bigint"},
//		{name: "amount", type: "decimal(10,2)"},
//	]
//
// Table names may be qualified ("analytics.orders"); the part before the
// first dot becomes the schema qualifier.
func LoadCatalog(dir string) (*catalog.MapAccessor, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	tablesVal := value.LookupPath(cue.ParsePath("tables"))
	if !tablesVal.Exists() {
		return nil, &LoadError{Code: ErrCodeBadSchema, Message: "catalog declares no tables"}
	}
	iter, err := tablesVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadSchema, Message: fmt.Sprintf("iterating tables: %v", err)}
	}

	acc := catalog.NewMapAccessor()
	count := 0
	for iter.Next() {
		ref := parseTableName(iter.Selector().Unquoted())
		fields, err := decodeColumns(iter.Value())
		if err != nil {
			return nil, &LoadError{Code: ErrCodeBadSchema, Message: fmt.Sprintf("table %s: %v", ref, err)}
		}
		acc.AddTable(ref, fields)
		count++
	}
	if count == 0 {
		return nil, &LoadError{Code: ErrCodeBadSchema, Message: "catalog declares no tables"}
	}
	return acc, nil
}

func decodeColumns(tableVal cue.Value) ([]catalog.Field, error) {
	columnsVal := tableVal.LookupPath(cue.ParsePath("columns"))
	if !columnsVal.Exists() {
		return nil, fmt.Errorf("missing columns list")
	}
	list, err := columnsVal.List()
	if err != nil {
		return nil, fmt.Errorf("columns must be a list: %v", err)
	}

	var fields []catalog.Field
	for list.Next() {
		col := list.Value()
		name, err := col.LookupPath(cue.ParsePath("name")).String()
		if err != nil {
			return nil, fmt.Errorf("column %d: missing name: %v", len(fields), err)
		}
		typeStr, err := col.LookupPath(cue.ParsePath("type")).String()
		if err != nil {
			return nil, fmt.Errorf("column %q: missing type: %v", name, err)
		}
		typ, err := catalog.ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("column %q: %v", name, err)
		}
		fields = append(fields, catalog.Field{Name: name, Type: typ})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty columns list")
	}
	return fields, nil
}

func parseTableName(name string) catalog.TableRef {
	for i, r := range name {
		if r == '.' {
			return catalog.TableRef{Schema: name[:i], Name: name[i+1:]}
		}
	}
	return catalog.TableRef{Name: name}
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
