// Package routes assembles the HTTP surface.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizhubhq/quizhub-backend/api/controllers"
	"github.com/quizhubhq/quizhub-backend/api/middleware"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
)

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Log *logger.Logger

	Authenticator *middleware.Authenticator

	Health       *controllers.HealthController
	Auth         *controllers.AuthController
	Users        *controllers.UsersController
	UserActions  *controllers.UserActionsController
	Companies    *controllers.CompaniesController
	Members      *controllers.MembersController
	Invites      *controllers.InvitesController
	JoinRequests *controllers.JoinRequestsController
	Quizzes      *controllers.QuizzesController
}

// New builds the router with the shared middleware stack.
func New(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(deps.Log))
	r.Use(middleware.Recoverer(deps.Log))
	r.Use(middleware.Logging(deps.Log))
	r.Use(middleware.CORS())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", deps.Health.Live)
		r.Get("/ready", deps.Health.Ready)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/refresh", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.Authenticator.Require)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", deps.Users.List)
				r.Get("/me", deps.Users.Me)
				r.Get("/me/invitations", deps.UserActions.MyInvites)
				r.Get("/me/join-requests", deps.UserActions.MyJoinRequests)
				r.Get("/{userID}", deps.Users.Get)
				r.Patch("/{userID}", deps.Users.Update)
				r.Delete("/{userID}", deps.Users.Delete)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Post("/", deps.Companies.Create)
				r.Get("/", deps.Companies.List)

				r.Route("/{companyID}", func(r chi.Router) {
					r.Get("/", deps.Companies.Get)
					r.Patch("/", deps.Companies.Update)
					r.Patch("/visibility", deps.Companies.SetVisibility)
					r.Delete("/", deps.Companies.Delete)

					r.Get("/members", deps.Members.ListMembers)
					r.Delete("/members/{userID}", deps.Members.RemoveMember)
					r.Post("/leave", deps.Members.Leave)

					r.Get("/admins", deps.Members.ListAdmins)
					r.Put("/admins/{userID}", deps.Members.AssignAdmin)
					r.Delete("/admins/{userID}", deps.Members.RevokeAdmin)

					r.Post("/invites", deps.Invites.Create)
					r.Get("/invites", deps.Invites.ListForCompany)
					r.Get("/invited-users", deps.Invites.ListInvitedUsers)

					r.Post("/join-requests", deps.JoinRequests.Create)
					r.Get("/join-requests", deps.JoinRequests.ListForCompany)

					r.Post("/quizzes", deps.Quizzes.Create)
					r.Get("/quizzes", deps.Quizzes.ListForCompany)
				})
			})

			r.Route("/actions/{actionID}", func(r chi.Router) {
				r.Post("/respond", deps.Invites.Respond)
				r.Delete("/", deps.Invites.Cancel)
			})

			r.Route("/quizzes/{quizID}", func(r chi.Router) {
				r.Get("/", deps.Quizzes.Get)
				r.Patch("/", deps.Quizzes.Update)
				r.Delete("/", deps.Quizzes.Delete)
				r.Post("/questions", deps.Quizzes.AddQuestion)
			})

			r.Route("/questions/{questionID}", func(r chi.Router) {
				r.Patch("/", deps.Quizzes.UpdateQuestion)
				r.Delete("/", deps.Quizzes.DeleteQuestion)
				r.Post("/answers", deps.Quizzes.AddAnswer)
			})

			r.Route("/answers/{answerID}", func(r chi.Router) {
				r.Patch("/", deps.Quizzes.UpdateAnswer)
				r.Delete("/", deps.Quizzes.DeleteAnswer)
			})
		})
	})

	return r
}
