package rest

import (
	"net/http"

	"blog-service/internal/application/command"
	"github.com/labstack/echo/v4"
)

func (s *Server) createUser(c echo.Context) error {
	var createCommand command.CreateUserCommand
	if err := c.Bind(&createCommand); err != nil {
		return err
	}
	if key := c.Request().Header.Get(idempotencyHeader); key != "" {
		createCommand.IdempotencyKey = key
	}

	result, err := s.users.CreateUser(c.Request().Context(), &createCommand)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusCreated)
}

func (s *Server) listUsers(c echo.Context) error {
	result, err := s.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}

func (s *Server) getUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	result, err := s.users.FindUserById(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var updateCommand command.UpdateUserCommand
	if err := c.Bind(&updateCommand); err != nil {
		return err
	}
	updateCommand.ID = id

	result, err := s.users.UpdateUser(c.Request().Context(), &updateCommand)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := s.users.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listUserPosts(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	result, err := s.posts.ListUserPosts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}
