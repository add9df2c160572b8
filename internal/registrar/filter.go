package registrar

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter is one entry of a source filter value such as "+<src/*.proto>".
type Filter struct {
	Include bool
	Pattern string
}

func (f Filter) String() string {
	sign := "-"
	if f.Include {
		sign = "+"
	}
	return sign + "<" + f.Pattern + ">"
}

// ParseFilters splits a filter value into its entries. Text outside of
// +<...> and -<...> groups is ignored.
func ParseFilters(value string) ([]Filter, error) {
	var filters []Filter
	rest := value
	for {
		i := strings.IndexAny(rest, "+-")
		if i < 0 {
			return filters, nil
		}
		if i+1 >= len(rest) || rest[i+1] != '<' {
			rest = rest[i+1:]
			continue
		}
		end := strings.IndexByte(rest[i+2:], '>')
		if end < 0 {
			return nil, fmt.Errorf("unterminated filter %q", rest[i:])
		}
		filters = append(filters, Filter{
			Include: rest[i] == '+',
			Pattern: rest[i+2 : i+2+end],
		})
		rest = rest[i+2+end+1:]
	}
}

// Discover lists the schema files in folder that the registered include
// filter would match, sorted by name.
func Discover(folder string) ([]string, error) {
	return discover(os.DirFS(folder))
}

func discover(fsys fs.FS) ([]string, error) {
	matches, err := doublestar.Glob(fsys, "*"+SchemaExt, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing schemas: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Companion returns the options file name for a schema file name.
func Companion(schema string) string {
	return strings.TrimSuffix(schema, SchemaExt) + OptionsExt
}
