package routes

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sanketnagtilak/mern-project/handlers"
	"github.com/sanketnagtilak/mern-project/middleware"
	"github.com/sanketnagtilak/mern-project/utils"
)

// uploadBodyLimit caps the whole multipart body of an image upload; the
// handler enforces the per-file limit.
const uploadBodyLimit = "3M"

type Controllers struct {
	Listings *handlers.ListingController
	Users    *handlers.UserController
	Agents   *handlers.AgentController
	Health   map[string]func(context.Context) error
}

func RegisterRoutes(e *echo.Echo, ctl Controllers, auth echo.MiddlewareFunc) {
	userOnly := middleware.RequireKind(utils.KindUser)

	e.GET("/health", handlers.HealthCheck(ctl.Health))

	e.GET("/", handlers.HomePage)
	e.GET("/Sign-in", handlers.SignInPage)
	e.GET("/Sign-up", handlers.SignUpPage)
	e.GET("/About", handlers.AboutPage)
	e.GET("/Profile", handlers.ProfilePage)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", ctl.Users.Signup)
	authGroup.POST("/signin", ctl.Users.Signin)
	authGroup.GET("/signout", ctl.Users.Signout)

	user := api.Group("/user", auth, userOnly)
	user.GET("/:id", ctl.Users.GetUser)
	user.POST("/update/:id", ctl.Users.UpdateUser)
	user.DELETE("/delete/:id", ctl.Users.DeleteUser)
	user.GET("/listings/:id", ctl.Users.GetUserListings)

	agent := api.Group("/agent")
	agent.POST("/signup", ctl.Agents.Signup)
	agent.POST("/signin", ctl.Agents.Signin)
	agent.GET("/:id", ctl.Agents.GetAgent)

	listing := api.Group("/listing")
	listing.GET("/get/:id", ctl.Listings.GetListing)
	listing.GET("/get", ctl.Listings.GetListings)
	listing.GET("/agent/:agentId", ctl.Listings.GetListingsByAgent)
	listing.GET("/images/:fileId", ctl.Listings.DownloadImage)

	listing.POST("/create", ctl.Listings.CreateListing, auth, userOnly)
	listing.DELETE("/delete/:id", ctl.Listings.DeleteListing, auth, userOnly)
	listing.POST("/update/:id", ctl.Listings.UpdateListing, auth, userOnly)
	listing.POST("/:id/options/add", ctl.Listings.AddHouseOptions, auth)
	listing.POST("/:id/options/remove", ctl.Listings.RemoveHouseOption, auth)
	listing.POST("/:id/images", ctl.Listings.UploadImage, echomw.BodyLimit(uploadBodyLimit), auth, userOnly)
}
