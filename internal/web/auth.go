package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/model"
	"github.com/futofind/futofind/internal/view"
)

type authPage struct {
	PageData
	Form view.Form
}

// Landing handles GET /.
func (s *Server) Landing(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "landing.html", &authPage{PageData: s.page(r, "FutoFind"), Form: view.NewForm()})
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.Sessions.Current(); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	pd := s.page(r, "Log In")
	if r.URL.Query().Get("registered") != "" {
		pd.Success = "Registration successful! Please log in."
	}
	s.Templates.Render(w, "login.html", &authPage{PageData: pd, Form: view.NewForm()})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := view.NewForm()
	form.Submit(r.PostForm)

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	reject := func(msg string) {
		form.Reject(msg)
		pd := s.page(r, "Log In")
		pd.Error = msg
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "login.html", &authPage{PageData: pd, Form: form})
	}

	if email == "" || password == "" {
		reject("Login failed.")
		return
	}

	sess, err := s.API.Login(r.Context(), email, password)
	if err != nil {
		slog.Warn("login failed", "email", email, "error", err)
		reject(client.Message(err, "Login failed."))
		return
	}
	if err := s.Sessions.Login(r.Context(), *sess); err != nil {
		slog.Error("failed to store session", "error", err)
		reject("Login failed.")
		return
	}

	form.Succeed()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	form := view.NewForm()
	form.Values.Set("role", model.RoleStudent)
	s.Templates.Render(w, "register.html", &authPage{PageData: s.page(r, "Sign Up"), Form: form})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := view.NewForm()
	form.Submit(r.PostForm)

	reject := func(msg string) {
		form.Reject(msg)
		pd := s.page(r, "Sign Up")
		pd.Error = msg
		s.Templates.RenderStatus(w, http.StatusUnprocessableEntity, "register.html", &authPage{PageData: pd, Form: form})
	}

	if r.PostFormValue("password") != r.PostFormValue("confirmPassword") {
		reject("Passwords do not match")
		return
	}
	if r.PostFormValue("agree") == "" {
		reject("You must agree to the terms and privacy policy.")
		return
	}

	role := r.PostFormValue("role")
	if role != model.RoleStudent && role != model.RoleStaff {
		role = model.RoleStudent
	}

	req := client.RegisterRequest{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     role,
	}
	if err := s.API.Register(r.Context(), req); err != nil {
		slog.Warn("registration failed", "email", req.Email, "error", err)
		reject(client.Message(err, "Registration failed. Please try again."))
		return
	}

	slog.Info("account registered", "email", req.Email, "role", req.Role)
	form.Succeed()
	http.Redirect(w, r, "/login?registered=true", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Logout(r.Context()); err != nil {
		slog.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
