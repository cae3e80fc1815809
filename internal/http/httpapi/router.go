package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"ngoconnect/internal/http/handlers"
	"ngoconnect/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Requests(logger), chimw.RealIP, chimw.Recoverer)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
		r.Post("/logout", app.AuthLogout)
		r.Get("/me", app.Me)
	})

	r.Route("/donations", func(r chi.Router) {
		r.Post("/", app.DonationsCreate)
		r.Get("/mine", app.DonationsMine)
	})

	r.Route("/payment/{flowID}", func(r chi.Router) {
		r.Get("/", app.PaymentState)
		r.Post("/confirm", app.PaymentConfirm)
		r.Post("/outcome", app.PaymentOutcome)
		r.Post("/abandon", app.PaymentAbandon)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/users", app.AdminUsers)
		r.Get("/donations", app.AdminDonations)
		r.Post("/donations/{donationID}/status", app.AdminDonationStatus)
		r.Get("/stats", app.AdminStats)
		r.Get("/export/registrations.csv", app.AdminExportUsers)
	})

	return r
}
