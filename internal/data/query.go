package data

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reelbase/catalog/internal/biz"
)

// Cond is one named predicate clause: a SQL expression plus its arguments.
type Cond struct {
	Expr string
	Args []any
}

// Predicate is a conjunction of clauses. An empty predicate matches
// everything.
type Predicate []Cond

// Apply ANDs the predicate onto the query.
func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range p {
		db = db.Where(c.Expr, c.Args...)
	}
	return db
}

// MovieWhere translates a movie filter into a predicate. LOWER/LIKE is used
// instead of ILIKE so the same predicate runs on postgres and sqlite. The
// rating range only applies when both bounds are set; a single bound adds
// no clause at all.
func MovieWhere(f biz.MovieFilter) Predicate {
	var p Predicate
	if f.Search != "" {
		pat := "%" + f.Search + "%"
		p = append(p, Cond{
			Expr: "(LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))",
			Args: []any{pat, pat},
		})
	}
	if f.Genre != "" {
		p = append(p, Cond{Expr: "LOWER(genre) = LOWER(?)", Args: []any{f.Genre}})
	}
	if f.ReleaseYear != nil {
		p = append(p, Cond{Expr: "release_year = ?", Args: []any{*f.ReleaseYear}})
	}
	if f.MinRating != nil && f.MaxRating != nil {
		p = append(p, Cond{
			Expr: "id IN (SELECT movie_id FROM movie_ratings WHERE rating >= ? AND rating <= ?)",
			Args: []any{*f.MinRating, *f.MaxRating},
		})
	}
	return p
}

// ActorWhere translates an actor filter into a predicate. The birth-year
// range only applies when both bounds are set.
func ActorWhere(f biz.ActorFilter) Predicate {
	var p Predicate
	if f.Search != "" {
		pat := "%" + f.Search + "%"
		p = append(p, Cond{
			Expr: "(LOWER(name) LIKE LOWER(?) OR LOWER(biography) LIKE LOWER(?))",
			Args: []any{pat, pat},
		})
	}
	if f.BirthYearFrom != nil && f.BirthYearTo != nil {
		from := time.Date(*f.BirthYearFrom, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(*f.BirthYearTo, time.December, 31, 23, 59, 59, 0, time.UTC)
		p = append(p, Cond{Expr: "birth_date BETWEEN ? AND ?", Args: []any{from, to}})
	}
	return p
}

// MovieSearchWhere is the combined-search movie predicate: one
// case-insensitive substring match across the movie's text columns.
func MovieSearchWhere(q string) Predicate {
	pat := "%" + q + "%"
	cols := []string{"title", "description", "plot", "genre", "director", "writers", "awards"}
	exprs := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		exprs[i] = "LOWER(" + col + ") LIKE LOWER(?)"
		args[i] = pat
	}
	return Predicate{{Expr: "(" + strings.Join(exprs, " OR ") + ")", Args: args}}
}

// ActorSearchWhere is the combined-search actor predicate.
func ActorSearchWhere(q string) Predicate {
	pat := "%" + q + "%"
	return Predicate{{
		Expr: "(LOWER(name) LIKE LOWER(?) OR LOWER(biography) LIKE LOWER(?))",
		Args: []any{pat, pat},
	}}
}

// Include asks for one relation to be eager-loaded; a non-empty Columns
// list reduces the related rows to that projection.
type Include struct {
	Relation string
	Columns  []string
}

// Reduced projections. Foreign keys stay in the allowlists so gorm can
// still match preloaded rows to their parents.
var (
	castColumns       = []string{"id", "movie_id", "actor_id", "role"}
	actorSummaryCols  = []string{"id", "name", "nationality"}
	movieSummaryCols  = []string{"id", "title", "release_year", "genre"}
	ratingSummaryCols = []string{"id", "movie_id", "rating", "reviewer"}
)

// MovieIncludes maps include options onto eager-load directives for a
// movie query.
func MovieIncludes(inc biz.MovieInclude) []Include {
	var out []Include
	if inc.Cast {
		out = append(out, Include{Relation: "Cast", Columns: castColumns})
		if inc.Reduced {
			out = append(out, Include{Relation: "Cast.Actor", Columns: actorSummaryCols})
		} else {
			out = append(out, Include{Relation: "Cast.Actor"})
		}
	}
	if inc.Ratings {
		if inc.Reduced {
			out = append(out, Include{Relation: "Ratings", Columns: ratingSummaryCols})
		} else {
			out = append(out, Include{Relation: "Ratings"})
		}
	}
	return out
}

// ActorIncludes maps include options onto eager-load directives for an
// actor query.
func ActorIncludes(inc biz.ActorInclude) []Include {
	var out []Include
	if inc.Movies {
		out = append(out, Include{Relation: "Cast", Columns: castColumns})
		if inc.Reduced {
			out = append(out, Include{Relation: "Cast.Movie", Columns: movieSummaryCols})
		} else {
			out = append(out, Include{Relation: "Cast.Movie"})
		}
	}
	return out
}

// ApplyIncludes attaches the eager-load directives to the query.
func ApplyIncludes(db *gorm.DB, incs []Include) *gorm.DB {
	for _, inc := range incs {
		if len(inc.Columns) > 0 {
			cols := inc.Columns
			db = db.Preload(inc.Relation, func(tx *gorm.DB) *gorm.DB {
				return tx.Select(cols)
			})
		} else {
			db = db.Preload(inc.Relation)
		}
	}
	return db
}

// Order is a single-key order directive.
type Order struct {
	Column string
	Desc   bool
}

// Apply attaches the order to the query.
func (o Order) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{
		Column: clause.Column{Name: o.Column},
		Desc:   o.Desc,
	})
}

// Sortable columns per entity, keyed by the API's camelCase sort names.
// Anything not listed falls back to the default order.
var (
	movieSortColumns = map[string]string{
		"title":       "title",
		"releaseYear": "release_year",
		"genre":       "genre",
		"duration":    "duration",
		"budget":      "budget",
		"boxOffice":   "box_office",
		"createdAt":   "created_at",
	}
	actorSortColumns = map[string]string{
		"name":      "name",
		"birthDate": "birth_date",
		"createdAt": "created_at",
	}
)

// newestFirst is the default order for list endpoints.
var newestFirst = Order{Column: "created_at", Desc: true}

// OrderBy resolves a requested sort against an allowlist, falling back to
// the caller-supplied default when no (or an unknown) field is given.
func OrderBy(sortBy, sortOrder string, allowed map[string]string, def Order) Order {
	col, ok := allowed[sortBy]
	if sortBy == "" || !ok {
		return def
	}
	return Order{Column: col, Desc: strings.EqualFold(sortOrder, "desc")}
}

// Window is an offset/limit pair.
type Window struct {
	Offset int
	Limit  int
}

// Apply attaches the window to the query.
func (w Window) Apply(db *gorm.DB) *gorm.DB {
	return db.Offset(w.Offset).Limit(w.Limit)
}

// PageWindow converts 1-based page/limit into an offset window, defaulting
// page to 1 and limit to 10. It does not clamp out-of-range values; the
// validation boundary rejects those before this point.
func PageWindow(page, limit int) Window {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	return Window{Offset: (page - 1) * limit, Limit: limit}
}
