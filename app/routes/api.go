// Package routes declares the HTTP route table.
package routes

import (
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/zaika/app/controllers"
	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/pkg/middleware"
	"github.com/shashiranjanraj/zaika/pkg/rbac"
	"github.com/shashiranjanraj/zaika/pkg/response"
	"github.com/shashiranjanraj/zaika/pkg/router"
)

// Controllers bundles everything the route table mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Reservation *controllers.ReservationController
	Order       *controllers.OrderController
	Payment     *controllers.PaymentController
	Resolve     middleware.UserResolver
	Metrics     http.HandlerFunc
}

// Register mounts every route on r.
func Register(r *router.Router, c Controllers) {
	authed := middleware.Authenticate(c.Resolve)
	admin := rbac.HasRole(models.RoleAdmin)

	r.Get("/", "welcome", controllers.Welcome)
	if c.Metrics != nil {
		r.HandleFunc("/metrics", c.Metrics)
	}

	api := r.Group("/api/v1")
	api.Get("/", "api.welcome", controllers.Welcome)

	auth := api.Group("/auth")
	auth.Post("/signup", "auth.signup", c.Auth.Signup)
	auth.Post("/login", "auth.login", c.Auth.Login)
	auth.Post("/google", "auth.google", c.Auth.Google)
	auth.Get("/me", "auth.me", c.Auth.Me, authed)
	auth.Put("/address", "auth.address", c.Auth.UpdateAddress, authed)
	auth.Put("/change-password", "auth.change-password", c.Auth.ChangePassword, authed)
	auth.Put("/update-email", "auth.update-email", c.Auth.UpdateEmail, authed)
	auth.Put("/update-username", "auth.update-username", c.Auth.UpdateUsername, authed)
	auth.Delete("/delete-account", "auth.delete-account", c.Auth.DeleteAccount, authed)

	reservation := api.Group("/reservation")
	reservation.Get("/test", "reservation.test", c.Reservation.Test)
	reservation.Post("/send", "reservation.send", c.Reservation.Send, authed)
	reservation.Get("/my", "reservation.my", c.Reservation.Mine, authed)
	reservation.Get("/all", "reservation.all", c.Reservation.All, authed, admin)

	orders := api.Group("/orders")
	orders.Post("/", "orders.place", c.Order.Place, authed)
	orders.Get("/my", "orders.my", c.Order.Mine, authed)
	orders.Delete("/my", "orders.clear", c.Order.Clear, authed)

	payment := api.Group("/payment")
	payment.Post("/order", "payment.order", c.Payment.CreateOrder)
	payment.Post("/verify", "payment.verify", c.Payment.VerifyPayment)
	payment.Post("/webhook", "payment.webhook", c.Payment.Webhook)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Err(w, http.StatusNotFound,
			fmt.Sprintf("Cannot %s %s", req.Method, req.URL.Path))
	})
}
