package handler

import (
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"roomhub/internal/app/db"
	"roomhub/internal/app/store"
	"roomhub/internal/pkg/auth/session"
	"roomhub/internal/pkg/errs"
	"roomhub/internal/pkg/logx"
	"roomhub/internal/pkg/render"
	"roomhub/internal/pkg/req"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	nameRegex  = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)
)

// renderLoginPage re-renders the login form, optionally with a flash
// error and the previously submitted email.
func renderLoginPage(deps *AppDeps, w http.ResponseWriter, r *http.Request, flash string, email string) {
	data := pageData(r)
	data["page"] = "login"
	data["error"] = flash
	data["values"] = map[string]string{"email": email}

	deps.Render.HTML(w, http.StatusOK, "login_register", data)
}

// HandleLogin renders the login form and verifies submitted credentials.
// A missing user short-circuits with its own error before the password
// is ever checked; an established session skips the page entirely.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.FromRequest(r) != nil {
			render.Redirect(w, r, "/")
			return
		}

		if r.Method != http.MethodPost {
			renderLoginPage(deps, w, r, "", "")
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			deps.Render.Error(w, customErr)
			return
		}

		email := strings.ToLower(req.Field(r, "email"))
		password := r.PostFormValue("password")

		user, err := deps.Store.GetUserByEmail(r.Context(), email)
		if err != nil {
			if db.IsNotFound(err) {
				renderLoginPage(deps, w, r, errs.NewError(errs.ErrUserDoesNotExist).Message, email)
				return
			}

			logx.Error(err, "login: user lookup failed", "email", email)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			logx.Warn("login: password mismatch", "email", email)
			renderLoginPage(deps, w, r, errs.NewError(errs.ErrInvalidCredentials).Message, email)
			return
		}

		if err := establishSession(deps, w, user); err != nil {
			logx.Error(err, "login: session token generation failed", "user_id", user.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		render.Redirect(w, r, "/")
	}
}

// HandleLogout destroys the session unconditionally.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session.ClearCookie(w)
		render.Redirect(w, r, "/")
	}
}

// renderRegisterPage re-renders the registration form with a flash error
// and the sticky field values.
func renderRegisterPage(deps *AppDeps, w http.ResponseWriter, r *http.Request, flash string, email, name string) {
	data := pageData(r)
	data["page"] = "register"
	data["error"] = flash
	data["values"] = map[string]string{"email": email, "name": name}

	deps.Render.HTML(w, http.StatusOK, "login_register", data)
}

// HandleRegister creates a new account and logs it in immediately.
// Email and name are normalized to lowercase before validation.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.FromRequest(r) != nil {
			render.Redirect(w, r, "/")
			return
		}

		if r.Method != http.MethodPost {
			renderRegisterPage(deps, w, r, "", "", "")
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			deps.Render.Error(w, customErr)
			return
		}

		email := strings.ToLower(req.Field(r, "email"))
		name := strings.ToLower(req.Field(r, "name"))
		password1 := r.PostFormValue("password1")
		password2 := r.PostFormValue("password2")

		if !emailRegex.MatchString(email) {
			renderRegisterPage(deps, w, r, errs.NewError(errs.ErrInvalidEmail).Message, email, name)
			return
		}

		if !nameRegex.MatchString(name) {
			renderRegisterPage(deps, w, r, errs.NewError(errs.ErrInvalidName).Message, email, name)
			return
		}

		passwordLen := utf8.RuneCountInString(password1)
		if passwordLen < 6 || passwordLen > 50 {
			renderRegisterPage(deps, w, r, errs.NewError(errs.ErrInvalidPassword).Message, email, name)
			return
		}

		if password1 != password2 {
			renderRegisterPage(deps, w, r, errs.NewError(errs.ErrPasswordMismatch).Message, email, name)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
		if err != nil {
			logx.Error(err, "register: password hashing failed")
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		user, err := deps.Store.CreateUser(r.Context(), store.CreateUserParams{
			Email:        email,
			Name:         name,
			PasswordHash: string(hashedPassword),
		})

		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("register: email already exists", "email", email)
				renderRegisterPage(deps, w, r, errs.NewError(errs.ErrUserAlreadyExists).Message, email, name)
				return
			}

			logx.Error(err, "register: user creation failed")
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := establishSession(deps, w, user); err != nil {
			logx.Error(err, "register: session token generation failed", "user_id", user.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		render.Redirect(w, r, "/")
	}
}

// establishSession signs a session token for the user and sets the
// session cookie.
func establishSession(deps *AppDeps, w http.ResponseWriter, user store.User) error {
	token, err := session.GenerateToken(&session.Claims{
		UserID: user.ID,
		Name:   user.Name,
	}, deps.Config.SessionSecret, session.Lifetime)
	if err != nil {
		return err
	}

	session.SetCookie(w, token, deps.SecureCookies())
	return nil
}
