package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var migrations embed.FS

// Migration is one embedded schema script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded *.sql scripts in lexical order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := migrations.ReadFile(n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n, SQL: string(b)})
	}
	return out, nil
}
