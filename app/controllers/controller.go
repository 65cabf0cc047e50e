package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/session"
	"github.com/shashiranjanraj/storefront/pkg/view"
)

var errNoSession = errors.New("session middleware not installed")

// Page payloads. Every page carries User for the layout's navigation.

type homePage struct {
	User     *models.User
	Products []models.Product
	Orders   []models.Order
}

type registerPage struct {
	User   *models.User
	Errors []string
	Name   string
	Email  string
}

type loginPage struct {
	User   *models.User
	Title  string
	Action string
	Error  string
}

type adminOrdersPage struct {
	User     *models.User
	Orders   []models.Order
	Products []models.Product
	Statuses []string
}

// render writes page, or a 500 when the template fails.
func render(w http.ResponseWriter, r *http.Request, v *view.Renderer, status int, page string, data interface{}) {
	if err := v.Render(w, status, page, data); err != nil {
		serverError(w, r, err, "Internal Server Error")
	}
}

// serverError logs err with the request's logger and answers 500 with msg.
func serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.WithCtx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(msg)
	response.ServerError(w, msg)
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// saveSession persists sess, answering 500 on failure. It reports whether
// the caller may continue writing the response.
func saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) bool {
	if err := sess.Save(r.Context(), w); err != nil {
		serverError(w, r, err, "Internal Server Error")
		return false
	}
	return true
}

// sessionOf returns the request session, answering 500 when the session
// middleware is not installed.
func sessionOf(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess := session.FromCtx(r)
	if sess == nil {
		serverError(w, r, errNoSession, "Internal Server Error")
		return nil, false
	}
	return sess, true
}
