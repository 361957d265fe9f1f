package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sanketnagtilak/mern-project/middleware"
	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/services"
	"github.com/sanketnagtilak/mern-project/utils"
)

type UserController struct {
	users        *services.UserService
	listings     *services.ListingService
	cookieSecure bool
	tokenTTL     time.Duration
}

func NewUserController(users *services.UserService, listings *services.ListingService, cookieSecure bool, tokenTTL time.Duration) *UserController {
	return &UserController{
		users:        users,
		listings:     listings,
		cookieSecure: cookieSecure,
		tokenTTL:     tokenTTL,
	}
}

func (uc *UserController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := uc.users.Signup(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "User created successfully!"})
}

func (uc *UserController) Signin(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := uc.users.Signin(c.Request().Context(), req)
	if err != nil {
		return err
	}

	c.SetCookie(uc.accessCookie(resp.Token, uc.tokenTTL))
	return c.JSON(http.StatusOK, resp)
}

func (uc *UserController) Signout(c echo.Context) error {
	c.SetCookie(uc.accessCookie("", -1))
	return c.JSON(http.StatusOK, map[string]string{"message": "User has been logged out!"})
}

func (uc *UserController) accessCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   uc.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}

func (uc *UserController) GetUser(c echo.Context) error {
	user, err := uc.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateUser(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := uc.users.Update(c.Request().Context(), c.Param("id"), middleware.CallerID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (uc *UserController) DeleteUser(c echo.Context) error {
	if err := uc.users.Delete(c.Request().Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		return err
	}
	c.SetCookie(uc.accessCookie("", -1))
	return c.JSON(http.StatusOK, map[string]string{"message": "User has been deleted!"})
}

func (uc *UserController) GetUserListings(c echo.Context) error {
	listings, err := uc.listings.ListByUser(c.Request().Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}
