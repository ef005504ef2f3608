package auth

import (
	"github.com/Adedunmol/pulso/api/tokens"
	"github.com/Adedunmol/pulso/database"
	"github.com/Adedunmol/pulso/queue"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, queue queue.Queue, queries *database.Queries, tokenService tokens.TokenService) {

	authRouter := chi.NewRouter()

	handler := Handler{
		Store: NewUserStore(queries),
		Queue: queue,
		Token: tokenService,
	}

	authRouter.Route("/auth", func(authRouter chi.Router) {
		authRouter.Post("/register", handler.CreateUserHandler)
		authRouter.Post("/login", handler.LoginUserHandler)
		authRouter.Post("/logout", handler.LogoutUserHandler)
		authRouter.Get("/refresh-token", handler.RefreshTokenHandler)
	})

	r.Mount("/users", authRouter)
}
