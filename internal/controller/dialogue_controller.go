package controller

import (
	"socratic-notes-be/internal/dto"
	"socratic-notes-be/internal/pkg/serverutils"
	"socratic-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDialogueController interface {
	RegisterRoutes(r fiber.Router)
	GenerateQuestions(ctx *fiber.Ctx) error
	RecordResponse(ctx *fiber.Ctx) error
	ContinueDialogue(ctx *fiber.Ctx) error
	ExtractInsights(ctx *fiber.Ctx) error
	ShowLatest(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Activity(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	QuestionTypes(ctx *fiber.Ctx) error
	Intensities(ctx *fiber.Ctx) error
}

type dialogueController struct {
	dialogueService service.IDialogueService
}

func NewDialogueController(dialogueService service.IDialogueService) IDialogueController {
	return &dialogueController{
		dialogueService: dialogueService,
	}
}

func (c *dialogueController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dialogue/v1")
	h.Get("question-types", c.QuestionTypes)
	h.Get("intensities", c.Intensities)

	h.Use(serverutils.JwtMiddleware)
	h.Post("note/:noteId/generate", c.GenerateQuestions)
	h.Post("note/:noteId/respond", c.RecordResponse)
	h.Post("note/:noteId/continue", c.ContinueDialogue)
	h.Post("note/:noteId/extract-insights", c.ExtractInsights)
	h.Get("note/:noteId/latest", c.ShowLatest)
	h.Get("note/:noteId/history", c.History)
	h.Get("note/:noteId/activity", c.Activity)
	h.Delete("note/:noteId/session/:sessionId", c.DeleteSession)
}

func (c *dialogueController) GenerateQuestions(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.NoteId = noteId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogueService.GenerateQuestions(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate questions", res))
}

func (c *dialogueController) RecordResponse(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	var req dto.RecordResponseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.NoteId = noteId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogueService.RecordResponse(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record response", res))
}

func (c *dialogueController) ContinueDialogue(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	var req dto.ContinueDialogueRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.NoteId = noteId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogueService.ContinueDialogue(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success continue dialogue", res))
}

func (c *dialogueController) ExtractInsights(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	var req dto.ExtractInsightsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.NoteId = noteId

	res, err := c.dialogueService.ExtractInsights(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract insights", res))
}

func (c *dialogueController) ShowLatest(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	res, err := c.dialogueService.GetLatestSession(ctx.Context(), userId, noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show latest session", res))
}

func (c *dialogueController) History(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	res, err := c.dialogueService.GetHistory(ctx.Context(), userId, noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show dialogue history", res))
}

func (c *dialogueController) Activity(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	var query dto.ActivityQueryRequest
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.dialogueService.GetActivity(ctx.Context(), userId, noteId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show dialogue activity", res))
}

func (c *dialogueController) DeleteSession(ctx *fiber.Ctx) error {
	userId, noteId, err := identify(ctx)
	if err != nil {
		return err
	}

	sessionId := ctx.Params("sessionId")

	if err := c.dialogueService.DeleteSession(ctx.Context(), userId, noteId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *dialogueController) QuestionTypes(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list question types", c.dialogueService.ListQuestionTypes()))
}

func (c *dialogueController) Intensities(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list intensities", c.dialogueService.ListIntensities()))
}

// identify pulls the authenticated user and the note id path param.
func identify(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user token")
	}

	noteId, err := uuid.Parse(ctx.Params("noteId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}
	return userId, noteId, nil
}
