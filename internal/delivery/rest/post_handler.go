package rest

import (
	"net/http"

	"blog-service/internal/application/command"
	"github.com/labstack/echo/v4"
)

func (s *Server) createPost(c echo.Context) error {
	var createCommand command.CreatePostCommand
	if err := c.Bind(&createCommand); err != nil {
		return err
	}
	if key := c.Request().Header.Get(idempotencyHeader); key != "" {
		createCommand.IdempotencyKey = key
	}

	result, err := s.posts.CreatePost(c.Request().Context(), &createCommand)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusCreated)
}

func (s *Server) listPosts(c echo.Context) error {
	result, err := s.posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}

func (s *Server) getPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	result, err := s.posts.FindPostById(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}

func (s *Server) updatePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var updateCommand command.UpdatePostCommand
	if err := c.Bind(&updateCommand); err != nil {
		return err
	}
	updateCommand.ID = id

	result, err := s.posts.UpdatePost(c.Request().Context(), &updateCommand)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}

func (s *Server) patchPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patchCommand command.PatchPostCommand
	if err := c.Bind(&patchCommand); err != nil {
		return err
	}
	patchCommand.ID = id

	result, err := s.posts.PatchPost(c.Request().Context(), &patchCommand)
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}

func (s *Server) deletePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := s.posts.DeletePost(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listTags(c echo.Context) error {
	result, err := s.posts.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return sendJSONResponse(c, result.Result, http.StatusOK)
}
