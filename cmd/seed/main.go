// Command seed loads a small fixture set into the catalog database so a
// fresh deployment has something to browse. It is idempotent: rows are
// matched by their natural keys and only created when missing.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/conf"
	"github.com/reelbase/catalog/internal/data"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"service.name", "catalog-seed",
	)
	l := log.NewHelper(logger)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
			env.NewSource("CATALOG_"),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	d, cleanup, err := data.NewData(bc.Data, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := seed(d.DB()); err != nil {
		l.Errorf("seeding failed: %v", err)
		os.Exit(1)
	}
	l.Info("seeding complete")
}

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func strptr(s string) *string { return &s }

func f64ptr(f float64) *float64 { return &f }

func seed(db *gorm.DB) error {
	nolan := strptr("Christopher Nolan")
	movies := []data.Movie{
		{
			Title:       "Inception",
			Description: strptr("A thief who steals corporate secrets through dream-sharing technology."),
			ReleaseYear: 2010,
			Genre:       "Sci-Fi",
			Director:    nolan,
			Duration:    148,
			Budget:      f64ptr(160000000),
			BoxOffice:   f64ptr(829895144),
		},
		{
			Title:       "The Dark Knight",
			Description: strptr("Batman faces the Joker in Gotham City."),
			ReleaseYear: 2008,
			Genre:       "Action",
			Director:    nolan,
			Duration:    152,
			Budget:      f64ptr(185000000),
			BoxOffice:   f64ptr(1004558444),
		},
		{
			Title:       "Interstellar",
			Description: strptr("Explorers travel through a wormhole in search of a new home for humanity."),
			ReleaseYear: 2014,
			Genre:       "Sci-Fi",
			Director:    nolan,
			Duration:    169,
			Budget:      f64ptr(165000000),
			BoxOffice:   f64ptr(677471339),
		},
	}
	for i := range movies {
		if err := db.Where("title = ?", movies[i].Title).FirstOrCreate(&movies[i]).Error; err != nil {
			return err
		}
	}

	actors := []data.Actor{
		{Name: "Leonardo DiCaprio", Biography: strptr("American actor and producer."), BirthDate: date("1974-11-11")},
		{Name: "Christian Bale", Biography: strptr("English actor."), BirthDate: date("1974-01-30")},
		{Name: "Anne Hathaway", Biography: strptr("American actress."), BirthDate: date("1982-11-12")},
	}
	for i := range actors {
		if err := db.Where("name = ?", actors[i].Name).FirstOrCreate(&actors[i]).Error; err != nil {
			return err
		}
	}

	casts := []data.MovieActor{
		{MovieID: movies[0].ID, ActorID: actors[0].ID, Role: "Dom Cobb"},
		{MovieID: movies[1].ID, ActorID: actors[1].ID, Role: "Bruce Wayne"},
		{MovieID: movies[2].ID, ActorID: actors[2].ID, Role: "Brand"},
	}
	for i := range casts {
		err := db.Where("movie_id = ? AND actor_id = ?", casts[i].MovieID, casts[i].ActorID).
			FirstOrCreate(&casts[i]).Error
		if err != nil {
			return err
		}
	}

	ratings := []data.MovieRating{
		{MovieID: movies[0].ID, Rating: 8.8, Reviewer: "seed"},
		{MovieID: movies[1].ID, Rating: 9.0, Reviewer: "seed"},
		{MovieID: movies[2].ID, Rating: 8.6, Reviewer: "seed"},
	}
	for i := range ratings {
		err := db.Where("movie_id = ? AND reviewer = ?", ratings[i].MovieID, ratings[i].Reviewer).
			FirstOrCreate(&ratings[i]).Error
		if err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := data.User{
		Email:     "admin@example.com",
		Password:  string(hash),
		FirstName: strptr("Admin"),
		LastName:  strptr("User"),
		IsActive:  true,
	}
	return db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error
}
