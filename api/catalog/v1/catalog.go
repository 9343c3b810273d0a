// Package v1 defines the request/reply shapes of the catalog HTTP API and
// the operation names used by transport middleware to gate routes.
package v1

import "time"

// Operation names, one per route. Write operations are listed in
// WriteOperations and require authorization.
const (
	OperationListMovies        = "/catalog.v1.CatalogService/ListMovies"
	OperationGetMovie          = "/catalog.v1.CatalogService/GetMovie"
	OperationCreateMovie       = "/catalog.v1.CatalogService/CreateMovie"
	OperationUpdateMovie       = "/catalog.v1.CatalogService/UpdateMovie"
	OperationDeleteMovie       = "/catalog.v1.CatalogService/DeleteMovie"
	OperationAddMovieActor     = "/catalog.v1.CatalogService/AddMovieActor"
	OperationUpdateMovieActor  = "/catalog.v1.CatalogService/UpdateMovieActor"
	OperationRemoveMovieActor  = "/catalog.v1.CatalogService/RemoveMovieActor"
	OperationListMovieRatings  = "/catalog.v1.CatalogService/ListMovieRatings"
	OperationGetRatingsAverage = "/catalog.v1.CatalogService/GetRatingsAverage"

	OperationListActors     = "/catalog.v1.CatalogService/ListActors"
	OperationGetActor       = "/catalog.v1.CatalogService/GetActor"
	OperationCreateActor    = "/catalog.v1.CatalogService/CreateActor"
	OperationUpdateActor    = "/catalog.v1.CatalogService/UpdateActor"
	OperationDeleteActor    = "/catalog.v1.CatalogService/DeleteActor"
	OperationGetActorMovies = "/catalog.v1.CatalogService/GetActorMovies"

	OperationCreateRating       = "/catalog.v1.CatalogService/CreateRating"
	OperationBatchCreateRatings = "/catalog.v1.CatalogService/BatchCreateRatings"
	OperationUpdateRating       = "/catalog.v1.CatalogService/UpdateRating"
	OperationDeleteRating       = "/catalog.v1.CatalogService/DeleteRating"

	OperationRegisterUser = "/catalog.v1.CatalogService/RegisterUser"
	OperationLoginUser    = "/catalog.v1.CatalogService/LoginUser"
	OperationListUsers    = "/catalog.v1.CatalogService/ListUsers"
	OperationGetUser      = "/catalog.v1.CatalogService/GetUser"
	OperationUpdateUser   = "/catalog.v1.CatalogService/UpdateUser"
	OperationDeleteUser   = "/catalog.v1.CatalogService/DeleteUser"

	OperationSearch      = "/catalog.v1.CatalogService/Search"
	OperationHealthCheck = "/catalog.v1.CatalogService/HealthCheck"
)

// WriteOperations is the set of operations gated by the write guard.
// Register and login stay open so clients can obtain credentials.
var WriteOperations = map[string]bool{
	OperationCreateMovie:        true,
	OperationUpdateMovie:        true,
	OperationDeleteMovie:        true,
	OperationAddMovieActor:      true,
	OperationUpdateMovieActor:   true,
	OperationRemoveMovieActor:   true,
	OperationCreateActor:        true,
	OperationUpdateActor:        true,
	OperationDeleteActor:        true,
	OperationCreateRating:       true,
	OperationBatchCreateRatings: true,
	OperationUpdateRating:       true,
	OperationDeleteRating:       true,
	OperationListUsers:          true,
	OperationUpdateUser:         true,
	OperationDeleteUser:         true,
}

// PageMeta is the pagination envelope attached to list replies.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PagedReply carries a page of items plus its meta. The response encoder
// hoists Meta next to the data envelope.
type PagedReply struct {
	Data any       `json:"data"`
	Meta *PageMeta `json:"meta"`
}

// CastRef is an actor as seen from a movie (or vice versa through MovieRef).
type CastRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// MovieRef is a movie as seen from an actor's filmography.
type MovieRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Role  string `json:"role"`
}

// MovieReply is the full movie representation.
type MovieReply struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	Plot        *string     `json:"plot,omitempty"`
	ReleaseYear int         `json:"releaseYear"`
	Genre       string      `json:"genre"`
	Duration    int         `json:"duration"`
	Budget      *float64    `json:"budget,omitempty"`
	BoxOffice   *float64    `json:"boxOffice,omitempty"`
	Awards      *string     `json:"awards,omitempty"`
	Writers     *string     `json:"writers,omitempty"`
	Director    *string     `json:"director,omitempty"`
	Actors      []CastRef   `json:"actors,omitempty"`
	Ratings     []RatingRef `json:"ratings,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// MovieCreated wraps a create reply so it is written with 201.
type MovieCreated struct{ MovieReply }

// HTTPStatus reports the status code for resource creation.
func (MovieCreated) HTTPStatus() int { return 201 }

// RatingRef is a rating as embedded in a movie reply.
type RatingRef struct {
	ID       uint    `json:"id"`
	Rating   float64 `json:"rating"`
	Reviewer string  `json:"reviewer"`
}

// CreateMovieRequest creates a movie, optionally with its initial cast.
// Roles pair positionally with ActorIds; missing roles get a placeholder.
type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description *string  `json:"description"`
	Plot        *string  `json:"plot"`
	ReleaseYear int      `json:"releaseYear" validate:"required,gte=1870,lte=2100"`
	Genre       string   `json:"genre" validate:"required,max=100"`
	Duration    int      `json:"duration" validate:"gte=0"`
	Budget      *float64 `json:"budget" validate:"omitempty,gte=0"`
	BoxOffice   *float64 `json:"boxOffice" validate:"omitempty,gte=0"`
	Awards      *string  `json:"awards"`
	Writers     *string  `json:"writers"`
	Director    *string  `json:"director"`
	ActorIds    []uint   `json:"actorIds"`
	Roles       []string `json:"roles"`
}

// CastChange adds or re-roles one actor on a movie.
type CastChange struct {
	ActorID uint   `json:"actorId" validate:"required"`
	Role    string `json:"role"`
}

// UpdateMovieRequest applies a partial update; only set fields change.
type UpdateMovieRequest struct {
	Title          *string      `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string      `json:"description"`
	Plot           *string      `json:"plot"`
	ReleaseYear    *int         `json:"releaseYear" validate:"omitempty,gte=1870,lte=2100"`
	Genre          *string      `json:"genre" validate:"omitempty,max=100"`
	Duration       *int         `json:"duration" validate:"omitempty,gte=0"`
	Budget         *float64     `json:"budget" validate:"omitempty,gte=0"`
	BoxOffice      *float64     `json:"boxOffice" validate:"omitempty,gte=0"`
	Awards         *string      `json:"awards"`
	Writers        *string      `json:"writers"`
	Director       *string      `json:"director"`
	AddActors      []CastChange `json:"addActors" validate:"omitempty,dive"`
	UpdateRoles    []CastChange `json:"updateRoles" validate:"omitempty,dive"`
	RemoveActorIds []uint       `json:"removeActorIds"`
}

// ListMoviesRequest carries the movie list filters and paging knobs.
// Include is a comma-separated relation list ("actors", "ratings");
// Reduced swaps full related rows for a fixed projection.
type ListMoviesRequest struct {
	Search      string   `form:"search"`
	Genre       string   `form:"genre"`
	ReleaseYear *int     `form:"releaseYear" validate:"omitempty,gte=1870,lte=2100"`
	MinRating   *float64 `form:"minRating" validate:"omitempty,gte=1,lte=10"`
	MaxRating   *float64 `form:"maxRating" validate:"omitempty,gte=1,lte=10"`
	SortBy      string   `form:"sortBy"`
	SortOrder   string   `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page        int      `form:"page" validate:"omitempty,gte=1"`
	Limit       int      `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Include     string   `form:"include"`
	Reduced     bool     `form:"reduced"`
}

// GetMovieRequest selects what a movie detail read eager-loads.
type GetMovieRequest struct {
	Include string `form:"include"`
	Reduced bool   `form:"reduced"`
}

// UpdateCastRoleRequest rewrites the role on an existing cast row.
type UpdateCastRoleRequest struct {
	Role string `json:"role" validate:"required,max=255"`
}

// ActorReply is the full actor representation.
type ActorReply struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	PlaceOfBirth *string    `json:"placeOfBirth,omitempty"`
	Nationality  *string    `json:"nationality,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Biography    *string    `json:"biography,omitempty"`
	Movies       []MovieRef `json:"movies,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ActorCreated wraps a create reply so it is written with 201.
type ActorCreated struct{ ActorReply }

// HTTPStatus reports the status code for resource creation.
func (ActorCreated) HTTPStatus() int { return 201 }

// CreateActorRequest creates an actor. BirthDate uses YYYY-MM-DD.
type CreateActorRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	BirthDate    *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth *string `json:"placeOfBirth"`
	Nationality  *string `json:"nationality"`
	Description  *string `json:"description"`
	Biography    *string `json:"biography"`
}

// UpdateActorRequest applies a partial update; only set fields change.
type UpdateActorRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	BirthDate    *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth *string `json:"placeOfBirth"`
	Nationality  *string `json:"nationality"`
	Description  *string `json:"description"`
	Biography    *string `json:"biography"`
}

// ListActorsRequest carries the actor list filters and paging knobs.
type ListActorsRequest struct {
	Search        string `form:"search"`
	BirthYearFrom *int   `form:"birthYearFrom" validate:"omitempty,gte=1800,lte=2100"`
	BirthYearTo   *int   `form:"birthYearTo" validate:"omitempty,gte=1800,lte=2100"`
	SortBy        string `form:"sortBy"`
	SortOrder     string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page          int    `form:"page" validate:"omitempty,gte=1"`
	Limit         int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Include       string `form:"include"`
	Reduced       bool   `form:"reduced"`
}

// GetActorRequest selects what an actor detail read eager-loads.
type GetActorRequest struct {
	Include string `form:"include"`
	Reduced bool   `form:"reduced"`
}

// RatingReply is the full rating representation, optionally carrying its
// parent movie's identity.
type RatingReply struct {
	ID        uint      `json:"id"`
	MovieID   uint      `json:"movieId"`
	Rating    float64   `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	Reviewer  string    `json:"reviewer"`
	Movie     *MovieRef `json:"movie,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingCreated wraps a create reply so it is written with 201.
type RatingCreated struct{ RatingReply }

// HTTPStatus reports the status code for resource creation.
func (RatingCreated) HTTPStatus() int { return 201 }

// RatingsBatchCreated wraps the batch-create reply.
type RatingsBatchCreated struct {
	Ratings []RatingReply `json:"ratings"`
}

// HTTPStatus reports the status code for resource creation.
func (RatingsBatchCreated) HTTPStatus() int { return 201 }

// CreateRatingRequest submits one rating. Values live in [1.0, 10.0].
type CreateRatingRequest struct {
	MovieID  uint    `json:"movieId" validate:"required"`
	Rating   float64 `json:"rating" validate:"required,gte=1,lte=10"`
	Comment  *string `json:"comment"`
	Reviewer string  `json:"reviewer" validate:"required,max=255"`
}

// BatchCreateRatingsRequest submits several ratings atomically.
type BatchCreateRatingsRequest struct {
	Ratings []CreateRatingRequest `json:"ratings" validate:"required,min=1,dive"`
}

// UpdateRatingRequest applies a partial update to one rating.
type UpdateRatingRequest struct {
	Rating  *float64 `json:"rating" validate:"omitempty,gte=1,lte=10"`
	Comment *string  `json:"comment"`
}

// RatingsAverageReply reports a movie's mean rating. Average is 0 when the
// movie has no ratings.
type RatingsAverageReply struct {
	MovieID uint    `json:"movieId"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// CastReply is one cast row as returned by the cast endpoints.
type CastReply struct {
	MovieID uint   `json:"movieId"`
	ActorID uint   `json:"actorId"`
	Role    string `json:"role"`
}

// CastCreated wraps the add-actor-to-movie reply so it is written with 201.
type CastCreated struct{ CastReply }

// HTTPStatus reports the status code for resource creation.
func (CastCreated) HTTPStatus() int { return 201 }

// UserReply is the public user representation; the password hash never
// leaves the service layer.
type UserReply struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserCreated wraps a register reply so it is written with 201.
type UserCreated struct{ UserReply }

// HTTPStatus reports the status code for resource creation.
func (UserCreated) HTTPStatus() int { return 201 }

// RegisterUserRequest creates a user account.
type RegisterUserRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// LoginUserRequest exchanges credentials for a JWT.
type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUserReply carries the signed token and its expiry.
type LoginUserReply struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserReply `json:"user"`
}

// UpdateUserRequest applies a partial update to a user.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsActive  *bool   `json:"isActive"`
}

// PageRequest carries bare page/limit parameters for lists without
// filters (users, a movie's ratings).
type PageRequest struct {
	Page  int `form:"page" validate:"omitempty,gte=1"`
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// SearchRequest queries movies and actors together. Limit is restricted to
// a small menu of page sizes.
type SearchRequest struct {
	Q         string `form:"q" validate:"required"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" validate:"omitempty,gte=1"`
	Limit     int    `form:"limit" validate:"omitempty,oneof=5 10 15 20"`
}

// SearchItemReply is the uniform search hit. Type is "movie" or "actor";
// fields not applicable to the type are omitted.
type SearchItemReply struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`

	// Movie fields.
	Title         string    `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Plot          *string   `json:"plot,omitempty"`
	ReleaseYear   int       `json:"releaseYear,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	Duration      int       `json:"duration,omitempty"`
	Budget        *float64  `json:"budget,omitempty"`
	BoxOffice     *float64  `json:"boxOffice,omitempty"`
	Awards        *string   `json:"awards,omitempty"`
	Writers       *string   `json:"writers,omitempty"`
	Director      *string   `json:"director,omitempty"`
	AverageRating *float64  `json:"averageRating,omitempty"`
	Actors        []CastRef `json:"actors,omitempty"`

	// Actor fields.
	Name      string     `json:"name,omitempty"`
	Biography *string    `json:"biography,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Movies    []MovieRef `json:"movies,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HealthCheckReply reports liveness.
type HealthCheckReply struct {
	Status string `json:"status"`
}

// DeletedReply acknowledges a delete.
type DeletedReply struct {
	ID uint `json:"id"`
}
