package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/shashiranjanraj/zaika/pkg/bind"
	"github.com/shashiranjanraj/zaika/pkg/middleware"
	"github.com/shashiranjanraj/zaika/pkg/response"
)

// ReservationController serves the /reservation routes.
type ReservationController struct {
	svc *services.ReservationService
}

// NewReservationController wires a ReservationController.
func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{svc: svc}
}

type reservationRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=30"`
	LastName  string `json:"lastName" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,digits=10"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Address   string `json:"address" validate:"required,min=10,max=512"`
}

// Send handles POST /reservation/send.
func (c *ReservationController) Send(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := bind.JSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	var userID *uint
	if id, ok := middleware.UserIDFromCtx(r.Context()); ok {
		userID = &id
	}

	res, err := c.svc.Book(r.Context(), services.ReservationInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Address:   req.Address,
	}, userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, "Reservation Successful!", map[string]interface{}{
		"reservation": res,
	})
}

// Mine handles GET /reservation/my.
func (c *ReservationController) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	reservations, err := c.svc.Mine(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "", map[string]interface{}{"reservations": reservations})
}

// All handles GET /reservation/all. The route is gated to admins.
func (c *ReservationController) All(w http.ResponseWriter, r *http.Request) {
	reservations, err := c.svc.All(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, "", map[string]interface{}{"reservations": reservations})
}

// Test handles GET /reservation/test, a liveness probe.
func (c *ReservationController) Test(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "Reservation route is working!", nil)
}
