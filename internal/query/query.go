package query

import "github.com/janus-lang/janus/internal/astdb"

// Run parses expr and evaluates it against every declaration in db,
// returning the matches in db's insertion order.
func Run(db *astdb.DB, expr string) ([]astdb.Decl, error) {
	e, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	var out []astdb.Decl
	for _, d := range db.All() {
		if e.Eval(d) {
			out = append(out, d)
		}
	}
	return out, nil
}
