package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/store"
	"github.com/vk/flowgrid/internal/workflow"
)

func (s *Server) routes() {
	s.app.Get("/health", func(c fiber.Ctx) error {
		return respond(c, fiber.StatusOK, fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api")

	api.Post("/workflows", s.createWorkflow)
	api.Get("/workflows", s.listWorkflows)
	api.Get("/workflows/:id", s.getWorkflow)
	api.Put("/workflows/:id", s.updateWorkflow)
	api.Delete("/workflows/:id", s.deleteWorkflow)
	api.Post("/workflows/:id/execute", s.executeWorkflow)

	api.Post("/executions", s.executeInline)
	api.Get("/executions/:id", s.getExecution)
}

func (s *Server) createWorkflow(c fiber.Ctx) error {
	var wf workflow.Workflow
	if err := c.Bind().JSON(&wf); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not a valid workflow")
	}
	workflow.Normalize(&wf)
	if errs := workflow.Check(&wf); len(errs) > 0 {
		return respondError(c, fiber.StatusBadRequest, "INVALID_WORKFLOW", "workflow failed structural validation", errs...)
	}
	if err := s.store.SaveWorkflow(c.Context(), &wf); err != nil {
		return s.internalError(c, "save workflow", err)
	}
	return respond(c, fiber.StatusCreated, wf)
}

func (s *Server) listWorkflows(c fiber.Ctx) error {
	list, err := s.store.ListWorkflows(c.Context())
	if err != nil {
		return s.internalError(c, "list workflows", err)
	}
	return respond(c, fiber.StatusOK, list)
}

func (s *Server) getWorkflow(c fiber.Ctx) error {
	wf, err := s.store.GetWorkflow(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "workflow not found")
	}
	if err != nil {
		return s.internalError(c, "get workflow", err)
	}
	return respond(c, fiber.StatusOK, wf)
}

func (s *Server) updateWorkflow(c fiber.Ctx) error {
	var wf workflow.Workflow
	if err := c.Bind().JSON(&wf); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not a valid workflow")
	}
	wf.Metadata.ID = c.Params("id")
	// Updates replace a stored definition, so the body must be structurally
	// complete on its own; only create backfills missing pieces.
	if errs := workflow.Check(&wf); len(errs) > 0 {
		return respondError(c, fiber.StatusBadRequest, "INVALID_WORKFLOW", "workflow failed structural validation", errs...)
	}
	workflow.Normalize(&wf)
	if err := s.store.SaveWorkflow(c.Context(), &wf); err != nil {
		return s.internalError(c, "save workflow", err)
	}
	return respond(c, fiber.StatusOK, wf)
}

func (s *Server) deleteWorkflow(c fiber.Ctx) error {
	err := s.store.DeleteWorkflow(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "workflow not found")
	}
	if err != nil {
		return s.internalError(c, "delete workflow", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// executeWorkflow runs a stored workflow. The execution report is relayed
// verbatim: a failed run is still a 200, with the failure information in
// the report itself.
func (s *Server) executeWorkflow(c fiber.Ctx) error {
	wf, err := s.store.GetWorkflow(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "workflow not found")
	}
	if err != nil {
		return s.internalError(c, "get workflow", err)
	}
	return s.run(c, wf)
}

// executeInline runs a workflow definition passed in the request body
// without persisting it.
func (s *Server) executeInline(c fiber.Ctx) error {
	var wf workflow.Workflow
	if err := c.Bind().JSON(&wf); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not a valid workflow")
	}
	workflow.Normalize(&wf)
	if errs := workflow.Check(&wf); len(errs) > 0 {
		return respondError(c, fiber.StatusBadRequest, "INVALID_WORKFLOW", "workflow failed structural validation", errs...)
	}
	return s.run(c, &wf)
}

func (s *Server) run(c fiber.Ctx, wf *workflow.Workflow) error {
	runner := engine.NewRunner(s.registry, engine.Options{
		Timeout: s.timeout,
		Logger:  s.logger,
	})
	exec := runner.Run(c.Context(), wf)
	if err := s.store.SaveExecution(c.Context(), exec); err != nil {
		return s.internalError(c, "save execution", err)
	}
	return respond(c, fiber.StatusOK, exec)
}

func (s *Server) getExecution(c fiber.Ctx) error {
	exec, err := s.store.GetExecution(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", "execution not found")
	}
	if err != nil {
		return s.internalError(c, "get execution", err)
	}
	return respond(c, fiber.StatusOK, exec)
}

func (s *Server) internalError(c fiber.Ctx, op string, err error) error {
	s.logger.Error("request failed", "op", op, "error", err)
	return respondError(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}
