package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/middleware"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/view"
)

const (
	loginFlashKey  = "login"
	loginFailedMsg = "Invalid email or password"
)

// Login portals, used as metric labels.
const (
	portalCustomer = "customer"
	portalAdmin    = "admin"
)

type AuthController struct {
	auth *services.AuthService
	view *view.Renderer
}

func NewAuthController(auth *services.AuthService, v *view.Renderer) *AuthController {
	return &AuthController{auth: auth, view: v}
}

// ShowRegister renders the empty registration form.
func (c *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	render(w, r, c.view, http.StatusOK, "register", registerPage{User: id.User})
}

// Register creates the account and redirects to the login page. Invalid
// input re-renders the form with the entered name and email.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	in := services.RegisterInput{
		Name:      r.PostFormValue("name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}

	user, err := c.auth.Register(r.Context(), in)
	if err != nil {
		page := registerPage{User: id.User, Name: in.Name, Email: in.Email}

		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			page.Errors = verr.Messages
		case errors.Is(err, services.ErrEmailTaken):
			page.Errors = []string{services.MsgEmailTaken}
		default:
			metrics.Registrations.WithLabelValues("error").Inc()
			serverError(w, r, err, "Error registering user")
			return
		}

		metrics.Registrations.WithLabelValues("invalid").Inc()
		render(w, r, c.view, http.StatusOK, "register", page)
		return
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	logger.WithCtx(r.Context()).Info().Uint("user_id", user.ID).Msg("user registered")
	response.Redirect(w, r, "/login")
}

// ShowLogin renders the customer login form.
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	c.showLogin(w, r, id, loginPage{Title: "Log in", Action: "/login"})
}

// ShowAdminLogin renders the admin login form.
func (c *AuthController) ShowAdminLogin(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	c.showLogin(w, r, id, loginPage{Title: "Admin log in", Action: "/admin/login"})
}

func (c *AuthController) showLogin(w http.ResponseWriter, r *http.Request, id middleware.Identity, page loginPage) {
	sess, ok := sessionOf(w, r)
	if !ok {
		return
	}
	page.User = id.User
	page.Error = sess.PopFlash(loginFlashKey)
	if !saveSession(w, r, sess) {
		return
	}
	render(w, r, c.view, http.StatusOK, "login", page)
}

// Login signs a customer in and redirects home.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request, _ middleware.Identity) {
	c.login(w, r, portalCustomer, "/")
}

// AdminLogin signs a user in through the admin portal and redirects to the
// order list. Role checks happen on the admin routes themselves.
func (c *AuthController) AdminLogin(w http.ResponseWriter, r *http.Request, _ middleware.Identity) {
	c.login(w, r, portalAdmin, "/admin/orders")
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request, portal, success string) {
	sess, ok := sessionOf(w, r)
	if !ok {
		return
	}

	user, err := c.auth.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		metrics.LoginAttempts.WithLabelValues(portal, "failure").Inc()
		sess.Flash(loginFlashKey, loginFailedMsg)
		if saveSession(w, r, sess) {
			response.Redirect(w, r, "/login")
		}
		return
	}
	if err != nil {
		serverError(w, r, err, "Error logging in")
		return
	}

	// A fresh id on every privilege change defeats session fixation.
	if err := sess.Regenerate(); err != nil {
		serverError(w, r, err, "Error logging in")
		return
	}
	sess.Set(middleware.SessionUserKey, user.ID)
	if !saveSession(w, r, sess) {
		return
	}

	metrics.LoginAttempts.WithLabelValues(portal, "success").Inc()
	logger.WithCtx(r.Context()).Info().Uint("user_id", user.ID).Str("portal", portal).Msg("user logged in")
	response.Redirect(w, r, success)
}

// Logout destroys the session and redirects to the login page.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request, _ middleware.Identity) {
	sess, ok := sessionOf(w, r)
	if !ok {
		return
	}
	sess.Invalidate()
	if saveSession(w, r, sess) {
		response.Redirect(w, r, "/login")
	}
}
