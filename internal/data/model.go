package data

import (
	"time"
)

// Movie represents the movies table.
type Movie struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"not null;size:255;index"`
	Description *string `gorm:"type:text"`
	Plot        *string `gorm:"type:text"`
	ReleaseYear int     `gorm:"index"`
	Genre       string  `gorm:"size:100;index"`
	Duration    int
	Budget      *float64
	BoxOffice   *float64 `gorm:"column:box_office"`
	Awards      *string  `gorm:"type:text"`
	Writers     *string  `gorm:"type:text"`
	Director    *string  `gorm:"size:255"`

	Cast    []MovieActor  `gorm:"foreignKey:MovieID"`
	Ratings []MovieRating `gorm:"foreignKey:MovieID"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name.
func (Movie) TableName() string {
	return "movies"
}

// Actor represents the actors table.
type Actor struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"not null;size:255;index"`
	BirthDate    *time.Time `gorm:"type:date;index"`
	PlaceOfBirth *string    `gorm:"size:255"`
	Nationality  *string    `gorm:"size:100"`
	Description  *string    `gorm:"type:text"`
	Biography    *string    `gorm:"type:text"`

	Cast []MovieActor `gorm:"foreignKey:ActorID"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name.
func (Actor) TableName() string {
	return "actors"
}

// MovieActor is the cast join table. The (movie_id, actor_id) pair is
// unique: re-linking an existing pair is a conflict.
type MovieActor struct {
	ID      uint   `gorm:"primaryKey"`
	MovieID uint   `gorm:"not null;uniqueIndex:uq_movie_actor;index"`
	ActorID uint   `gorm:"not null;uniqueIndex:uq_movie_actor;index"`
	Role    string `gorm:"not null;size:255"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Actor Actor `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the table name.
func (MovieActor) TableName() string {
	return "movie_actors"
}

// MovieRating represents the movie_ratings table.
type MovieRating struct {
	ID       uint    `gorm:"primaryKey"`
	MovieID  uint    `gorm:"not null;index"`
	Rating   float64 `gorm:"not null;check:rating >= 1.0 AND rating <= 10.0"`
	Comment  *string `gorm:"type:text"`
	Reviewer string  `gorm:"not null;size:255"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName overrides the table name.
func (MovieRating) TableName() string {
	return "movie_ratings"
}

// User represents the users table. Password is a bcrypt hash.
type User struct {
	ID        uint    `gorm:"primaryKey"`
	Email     string  `gorm:"not null;uniqueIndex;size:255"`
	Password  string  `gorm:"not null;size:255"`
	FirstName *string `gorm:"size:100"`
	LastName  *string `gorm:"size:100"`
	IsActive  bool    `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the table name.
func (User) TableName() string {
	return "users"
}
