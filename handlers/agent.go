package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sanketnagtilak/mern-project/models"
	"github.com/sanketnagtilak/mern-project/services"
	"github.com/sanketnagtilak/mern-project/utils"
)

type AgentController struct {
	agents *services.AgentService
}

func NewAgentController(agents *services.AgentService) *AgentController {
	return &AgentController{agents: agents}
}

func (ac *AgentController) Signup(c echo.Context) error {
	var req models.AgentSignupRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := ac.agents.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

func (ac *AgentController) Signin(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequest("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := ac.agents.Signin(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (ac *AgentController) GetAgent(c echo.Context) error {
	agent, err := ac.agents.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agent)
}
