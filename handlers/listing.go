package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sanketnagtilak/mern-project/middleware"
	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/repository"
	"github.com/sanketnagtilak/mern-project/services"
	"github.com/sanketnagtilak/mern-project/utils"
)

const maxImageSize = 2 << 20

type ListingController struct {
	listings *services.ListingService
}

func NewListingController(listings *services.ListingService) *ListingController {
	return &ListingController{listings: listings}
}

func (lc *ListingController) CreateListing(c echo.Context) error {
	var req models.CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := lc.listings.Create(c.Request().Context(), middleware.CallerID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, listing)
}

func (lc *ListingController) DeleteListing(c echo.Context) error {
	if err := lc.listings.Delete(c.Request().Context(), c.Param("id"), middleware.CallerID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Listing has been deleted!"})
}

func (lc *ListingController) UpdateListing(c echo.Context) error {
	var req models.UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := lc.listings.Update(c.Request().Context(), c.Param("id"), middleware.CallerID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

func (lc *ListingController) GetListing(c echo.Context) error {
	listing, err := lc.listings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// GetListings handles GET /api/listing/get?searchTerm=&offer=&furnished=&parking=&type=&sort=&order=&limit=&startIndex=
func (lc *ListingController) GetListings(c echo.Context) error {
	q := repository.ParseListingQuery(c.QueryParams())
	listings, err := lc.listings.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

func (lc *ListingController) GetListingsByAgent(c echo.Context) error {
	limit := repository.ParsePositive(c.QueryParam("limit"), repository.DefaultAgentLimit)
	skip := repository.ParseOffset(c.QueryParam("startIndex"))

	listings, err := lc.listings.ListByAgent(c.Request().Context(), c.Param("agentId"), limit, skip)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

func (lc *ListingController) AddHouseOptions(c echo.Context) error {
	var body struct {
		HouseOptions json.RawMessage `json:"houseOptions"`
	}
	if err := c.Bind(&body); err != nil {
		return utils.BadRequest("House options must be provided as an array")
	}

	listing, err := lc.listings.AddHouseOptions(c.Request().Context(), c.Param("id"), middleware.CallerID(c), decodeOptions(body.HouseOptions))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// decodeOptions returns nil unless raw is a JSON array of strings.
func decodeOptions(raw json.RawMessage) []string {
	if len(raw) == 0 || !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil
	}
	return opts
}

func (lc *ListingController) RemoveHouseOption(c echo.Context) error {
	var req models.RemoveOptionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Option to remove must be provided")
	}

	listing, err := lc.listings.RemoveHouseOption(c.Request().Context(), c.Param("id"), middleware.CallerID(c), req.Option)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

func (lc *ListingController) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest("file is required")
	}
	if fileHeader.Size > maxImageSize {
		return utils.BadRequest("Image must be less than 2 MB")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return utils.BadRequest("Only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	listing, err := lc.listings.AddImage(c.Request().Context(), c.Param("id"), middleware.CallerID(c), fileHeader.Filename, contentType, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

func (lc *ListingController) DownloadImage(c echo.Context) error {
	img, err := lc.listings.OpenImage(c.Request().Context(), c.Param("fileId"))
	if err != nil {
		return err
	}
	defer img.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": img.Name}))
	return c.Stream(http.StatusOK, img.ContentType, img)
}
