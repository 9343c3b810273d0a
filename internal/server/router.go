package server

import (
	"context"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	v1 "github.com/reelbase/catalog/api/catalog/v1"
	"github.com/reelbase/catalog/internal/service"
)

// pathID parses one numeric path variable.
func pathID(ctx khttp.Context, name string) (uint, error) {
	raw := ctx.Vars().Get(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.BadRequest("INVALID_ID", name+" must be a positive integer")
	}
	return uint(id), nil
}

// RegisterCatalogRoutes wires every catalog operation onto the server.
// Each handler follows the same shape: bind, set the operation (so the
// middleware chain can gate on it), run through the chain, emit the result.
func RegisterCatalogRoutes(srv *khttp.Server, svc *service.CatalogService) {
	root := srv.Route("/")
	root.GET("/healthz", func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, v1.OperationHealthCheck)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.HealthCheck(c)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	r := srv.Route("/api/v1")

	// Movies.
	r.GET("/movies", func(ctx khttp.Context) error {
		var in v1.ListMoviesRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationListMovies)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.ListMovies(c, req.(*v1.ListMoviesRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.POST("/movies", func(ctx khttp.Context) error {
		var in v1.CreateMovieRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationCreateMovie)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.CreateMovie(c, req.(*v1.CreateMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(201, out)
	})
	r.GET("/movies/{id}", func(ctx khttp.Context) error {
		var in v1.GetMovieRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationGetMovie)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.GetMovie(c, id, req.(*v1.GetMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.PATCH("/movies/{id}", func(ctx khttp.Context) error {
		var in v1.UpdateMovieRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationUpdateMovie)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.UpdateMovie(c, id, req.(*v1.UpdateMovieRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.DELETE("/movies/{id}", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationDeleteMovie)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.DeleteMovie(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	// Movie cast.
	r.POST("/movies/{id}/actors", func(ctx khttp.Context) error {
		var in v1.CastChange
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationAddMovieActor)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.AddMovieActor(c, id, req.(*v1.CastChange))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(201, out)
	})
	r.PATCH("/movies/{id}/actors/{actorId}", func(ctx khttp.Context) error {
		var in v1.UpdateCastRoleRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		actorID, err := pathID(ctx, "actorId")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationUpdateMovieActor)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.UpdateMovieActor(c, id, actorID, req.(*v1.UpdateCastRoleRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.DELETE("/movies/{id}/actors/{actorId}", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		actorID, err := pathID(ctx, "actorId")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationRemoveMovieActor)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.RemoveMovieActor(c, id, actorID)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	// Movie ratings.
	r.GET("/movies/{id}/ratings", func(ctx khttp.Context) error {
		var in v1.PageRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationListMovieRatings)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.ListMovieRatings(c, id, req.(*v1.PageRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.GET("/movies/{id}/ratings/average", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationGetRatingsAverage)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.GetRatingsAverage(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	// Actors.
	r.GET("/actors", func(ctx khttp.Context) error {
		var in v1.ListActorsRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationListActors)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.ListActors(c, req.(*v1.ListActorsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.POST("/actors", func(ctx khttp.Context) error {
		var in v1.CreateActorRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationCreateActor)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.CreateActor(c, req.(*v1.CreateActorRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(201, out)
	})
	r.GET("/actors/{id}", func(ctx khttp.Context) error {
		var in v1.GetActorRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationGetActor)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.GetActor(c, id, req.(*v1.GetActorRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.GET("/actors/{id}/movies", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationGetActorMovies)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.GetActorMovies(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.PATCH("/actors/{id}", func(ctx khttp.Context) error {
		var in v1.UpdateActorRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationUpdateActor)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.UpdateActor(c, id, req.(*v1.UpdateActorRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.DELETE("/actors/{id}", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationDeleteActor)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.DeleteActor(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	// Ratings.
	r.POST("/ratings", func(ctx khttp.Context) error {
		var in v1.CreateRatingRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationCreateRating)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.CreateRating(c, req.(*v1.CreateRatingRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(201, out)
	})
	r.POST("/ratings/batch", func(ctx khttp.Context) error {
		var in v1.BatchCreateRatingsRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationBatchCreateRatings)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.BatchCreateRatings(c, req.(*v1.BatchCreateRatingsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(201, out)
	})
	r.PATCH("/ratings/{id}", func(ctx khttp.Context) error {
		var in v1.UpdateRatingRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationUpdateRating)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.UpdateRating(c, id, req.(*v1.UpdateRatingRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.DELETE("/ratings/{id}", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationDeleteRating)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.DeleteRating(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	// Users.
	r.POST("/users/register", func(ctx khttp.Context) error {
		var in v1.RegisterUserRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationRegisterUser)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.RegisterUser(c, req.(*v1.RegisterUserRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(201, out)
	})
	r.POST("/users/login", func(ctx khttp.Context) error {
		var in v1.LoginUserRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationLoginUser)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.LoginUser(c, req.(*v1.LoginUserRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.GET("/users", func(ctx khttp.Context) error {
		var in v1.PageRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationListUsers)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.ListUsers(c, req.(*v1.PageRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.GET("/users/{id}", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationGetUser)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.GetUser(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.PATCH("/users/{id}", func(ctx khttp.Context) error {
		var in v1.UpdateUserRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationUpdateUser)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.UpdateUser(c, id, req.(*v1.UpdateUserRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
	r.DELETE("/users/{id}", func(ctx khttp.Context) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationDeleteUser)
		h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
			return svc.DeleteUser(c, id)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})

	// Search.
	r.GET("/search", func(ctx khttp.Context) error {
		var in v1.SearchRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, v1.OperationSearch)
		h := ctx.Middleware(func(c context.Context, req any) (any, error) {
			return svc.Search(c, req.(*v1.SearchRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	})
}
