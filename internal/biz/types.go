package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
)

// Coded sentinel errors. The HTTP error encoder derives status codes from
// these, so repos and use cases return them directly instead of mapping
// strings at the edge.
var (
	ErrMovieNotFound  = errors.NotFound("MOVIE_NOT_FOUND", "movie not found")
	ErrActorNotFound  = errors.NotFound("ACTOR_NOT_FOUND", "actor not found")
	ErrRatingNotFound = errors.NotFound("RATING_NOT_FOUND", "rating not found")
	ErrUserNotFound   = errors.NotFound("USER_NOT_FOUND", "user not found")
	ErrCastNotFound   = errors.NotFound("CAST_NOT_FOUND", "actor is not in this movie's cast")

	ErrCastExists  = errors.Conflict("CAST_EXISTS", "actor is already in this movie's cast")
	ErrEmailExists = errors.Conflict("EMAIL_EXISTS", "email is already registered")

	ErrInvalidCredentials = errors.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
	ErrUserInactive       = errors.Unauthorized("USER_INACTIVE", "user account is deactivated")
)

// DefaultRole is assigned to a cast entry when no role was supplied.
const DefaultRole = "Unknown Role"

// Movie domain model.
type Movie struct {
	ID          uint
	Title       string
	Description *string
	Plot        *string
	ReleaseYear int
	Genre       string
	Duration    int
	Budget      *float64
	BoxOffice   *float64
	Awards      *string
	Writers     *string
	Director    *string
	Cast        []CastMember
	Ratings     []MovieRating
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AverageRating returns the mean of the loaded ratings, or nil when the
// movie has none. Callers that want 0-for-empty use RatingAggregate instead.
func (m *Movie) AverageRating() *float64 {
	if len(m.Ratings) == 0 {
		return nil
	}
	var sum float64
	for _, r := range m.Ratings {
		sum += r.Rating
	}
	avg := sum / float64(len(m.Ratings))
	return &avg
}

// CastMember links a movie and an actor with the role played.
type CastMember struct {
	ID      uint
	MovieID uint
	ActorID uint
	Role    string
	// Denormalized names, populated when the join row was loaded with its
	// related entities.
	ActorName  string
	MovieTitle string
}

// Actor domain model.
type Actor struct {
	ID           uint
	Name         string
	BirthDate    *time.Time
	PlaceOfBirth *string
	Nationality  *string
	Description  *string
	Biography    *string
	Cast         []CastMember
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MovieRating domain model.
type MovieRating struct {
	ID         uint
	MovieID    uint
	Rating     float64
	Comment    *string
	Reviewer   string
	MovieTitle string
	CreatedAt  time.Time
}

// RatingAggregate is the dedicated average endpoint's shape; Average is 0
// when Count is 0.
type RatingAggregate struct {
	MovieID uint
	Average float64
	Count   int64
}

// User domain model. Password holds the bcrypt hash, never plaintext.
type User struct {
	ID        uint
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovieFilter narrows a movie list. The rating bounds only take effect when
// both are present.
type MovieFilter struct {
	Search      string
	Genre       string
	ReleaseYear *int
	MinRating   *float64
	MaxRating   *float64
}

// ActorFilter narrows an actor list. The birth-year bounds only take effect
// when both are present.
type ActorFilter struct {
	Search        string
	BirthYearFrom *int
	BirthYearTo   *int
}

// ListOptions carries sort and page parameters shared by the list queries.
type ListOptions struct {
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// MovieInclude selects which movie relations to eager-load. Reduced asks
// the store for the projection allowlist instead of full rows.
type MovieInclude struct {
	Cast    bool
	Ratings bool
	Reduced bool
}

// ActorInclude selects which actor relations to eager-load.
type ActorInclude struct {
	Movies  bool
	Reduced bool
}

// MovieUpdate is a partial update; nil fields are left untouched.
type MovieUpdate struct {
	Title       *string
	Description *string
	Plot        *string
	ReleaseYear *int
	Genre       *string
	Duration    *int
	Budget      *float64
	BoxOffice   *float64
	Awards      *string
	Writers     *string
	Director    *string
}

// CastChange adds or re-roles one (movie, actor) pair.
type CastChange struct {
	ActorID uint
	Role    string
}

// CastUpdate describes the relation edits of UpdateMovieWithRelations.
type CastUpdate struct {
	Add         []CastChange
	UpdateRoles []CastChange
	RemoveIDs   []uint
}

// ActorUpdate is a partial update; nil fields are left untouched.
type ActorUpdate struct {
	Name         *string
	BirthDate    *time.Time
	PlaceOfBirth *string
	Nationality  *string
	Description  *string
	Biography    *string
}

// RatingUpdate is a partial update; nil fields are left untouched.
type RatingUpdate struct {
	Rating  *float64
	Comment *string
}

// UserUpdate is a partial update; Password, when set, is already hashed.
type UserUpdate struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	IsActive  *bool
}

// MovieRepo is the movie half of the Entity Store.
type MovieRepo interface {
	List(ctx context.Context, f MovieFilter, opts ListOptions, inc MovieInclude) ([]*Movie, int64, error)
	Get(ctx context.Context, id uint, inc MovieInclude) (*Movie, error)
	Update(ctx context.Context, id uint, upd MovieUpdate) error
	AddCast(ctx context.Context, movieID uint, change CastChange) (*CastMember, error)
	UpdateCastRole(ctx context.Context, movieID, actorID uint, role string) error
	RemoveCast(ctx context.Context, movieID, actorID uint) error
	// SearchPage and SearchCount back the search combiner's movie arm.
	SearchPage(ctx context.Context, q string, limit int) ([]*Movie, error)
	SearchCount(ctx context.Context, q string) (int64, error)
}

// ActorRepo is the actor half of the Entity Store.
type ActorRepo interface {
	List(ctx context.Context, f ActorFilter, opts ListOptions, inc ActorInclude) ([]*Actor, int64, error)
	Get(ctx context.Context, id uint, inc ActorInclude) (*Actor, error)
	Create(ctx context.Context, actor *Actor) (*Actor, error)
	Update(ctx context.Context, id uint, upd ActorUpdate) error
	SearchPage(ctx context.Context, q string, limit int) ([]*Actor, error)
	SearchCount(ctx context.Context, q string) (int64, error)
}

// RatingRepo is the rating half of the Entity Store.
type RatingRepo interface {
	ListByMovie(ctx context.Context, movieID uint, opts ListOptions) ([]*MovieRating, int64, error)
	Get(ctx context.Context, id uint) (*MovieRating, error)
	Create(ctx context.Context, rating *MovieRating) (*MovieRating, error)
	Update(ctx context.Context, id uint, upd RatingUpdate) error
	Delete(ctx context.Context, id uint) error
	Aggregate(ctx context.Context, movieID uint) (*RatingAggregate, error)
}

// UserRepo is the user half of the Entity Store.
type UserRepo interface {
	List(ctx context.Context, opts ListOptions) ([]*User, int64, error)
	Get(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, id uint, upd UserUpdate) error
	Delete(ctx context.Context, id uint) error
}

// TxOptions bounds one atomic sequence. Zero values fall back to the
// manager's defaults (5s slot wait, 10s execution).
type TxOptions struct {
	MaxWait   time.Duration
	Timeout   time.Duration
	Isolation string
}

// TxManager runs multi-step store mutations atomically: every step commits
// or none do.
type TxManager interface {
	DeleteMovieWithRelations(ctx context.Context, movieID uint, opts *TxOptions) error
	DeleteActorWithRelations(ctx context.Context, actorID uint, opts *TxOptions) error
	CreateMovieWithActors(ctx context.Context, movie *Movie, cast []CastChange, opts *TxOptions) (*Movie, error)
	UpdateMovieWithRelations(ctx context.Context, movieID uint, upd MovieUpdate, cast *CastUpdate, opts *TxOptions) (*Movie, error)
	BatchCreateRatings(ctx context.Context, ratings []*MovieRating, opts *TxOptions) ([]*MovieRating, error)
}

// TokenIssuer mints an auth token for a user; implemented by the JWT
// manager in internal/auth.
type TokenIssuer interface {
	Issue(email string, userID uint) (token string, expiresAt time.Time, err error)
}
