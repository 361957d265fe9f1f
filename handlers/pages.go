package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type pageData struct {
	Title      string
	Active     string
	SearchTerm string
}

func renderPage(template, title, active string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, template, pageData{
			Title:      title,
			Active:     active,
			SearchTerm: c.QueryParam("searchTerm"),
		})
	}
}

var (
	HomePage    = renderPage("home.html", "Home", "home")
	SignInPage  = renderPage("signin.html", "Sign In", "signin")
	SignUpPage  = renderPage("signup.html", "Sign Up", "signup")
	AboutPage   = renderPage("about.html", "About", "about")
	ProfilePage = renderPage("profile.html", "Profile", "profile")
)
