package handlers

import (
	"fmt"
	"net/http"
	"time"

	"case_flow_app_go/config"
	"case_flow_app_go/db"
	"case_flow_app_go/models"
	"case_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

type createCaseRequest struct {
	Board       string `json:"board"` // id or slug
	Title       string `json:"title"`
	Description string `json:"description"`
	CaseType    string `json:"case_type"`

	ProductType  *string `json:"product_type,omitempty"`
	Specs        *string `json:"specs,omitempty"`
	CustomerName *string `json:"customer_name,omitempty"`

	AssigneeID *string `json:"assignee_id,omitempty"`
}

// CreateCaseHandler creates a case at the end of the board's first column
func CreateCaseHandler(c echo.Context) error {
	var req createCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	input := services.CreateCaseInput{
		BoardRef:     req.Board,
		Title:        req.Title,
		Description:  req.Description,
		CaseType:     req.CaseType,
		ProductType:  req.ProductType,
		Specs:        req.Specs,
		CustomerName: req.CustomerName,
		AssigneeID:   req.AssigneeID,
	}
	if user := currentUser(c); user != nil {
		input.CreatorID = &user.ID
	}

	created, err := services.CreateCase(db.DB, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// GetCasesHandler lists cases. Client-role callers only ever see their
// own submissions regardless of the filters they pass.
func GetCasesHandler(c echo.Context) error {
	filter := services.CaseFilter{
		BoardRef:   c.QueryParam("board"),
		ActiveOnly: c.QueryParam("active") == "true",
	}

	user := currentUser(c)
	if user != nil && !user.IsStaff() {
		filter.CreatorID = user.ID
	}

	cases, err := services.ListCases(db.DB, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, cases)
}

type caseResponse struct {
	*models.Case
	InboundAddress string `json:"inbound_address,omitempty"`
}

// GetCaseHandler returns one case, with the reply-to address customers
// can mail to reach it
func GetCaseHandler(c echo.Context) error {
	loaded, err := services.GetCase(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	user := currentUser(c)
	if user != nil && !user.IsStaff() {
		if loaded.CreatorID == nil || *loaded.CreatorID != user.ID {
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}

	resp := caseResponse{Case: loaded}
	if cfg, ok := c.Get("config").(*config.Config); ok && cfg.InboundDomain != "" {
		resp.InboundAddress = loaded.InboundAddress(cfg.InboundDomain)
	}

	return c.JSON(http.StatusOK, resp)
}

type moveCaseRequest struct {
	ColumnID string `json:"column_id"`
	Position int    `json:"position"`
}

// MoveCaseHandler overwrites a case's column and position
func MoveCaseHandler(c echo.Context) error {
	var req moveCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	moved, err := services.MoveCase(db.DB, c.Param("id"), req.ColumnID, req.Position)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, moved)
}

// UpdateCaseHandler applies a partial update to a case's mutable fields
func UpdateCaseHandler(c echo.Context) error {
	var updates map[string]interface{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	updated, err := services.UpdateCaseFields(db.DB, c.Param("id"), updates)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

type addNoteRequest struct {
	Content string `json:"content"`
}

// AddCaseNoteHandler appends a note to a case
func AddCaseNoteHandler(c echo.Context) error {
	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	var authorID *string
	if user := currentUser(c); user != nil {
		authorID = &user.ID
	}

	note, err := services.AddCaseNote(db.DB, c.Param("id"), authorID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, note)
}

// GetCaseNotesHandler lists a case's notes oldest first
func GetCaseNotesHandler(c echo.Context) error {
	notes, err := services.ListCaseNotes(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

// UploadCaseAttachmentHandler stores an uploaded file and records it
// against the case
func UploadCaseAttachmentHandler(c echo.Context) error {
	loaded, err := services.GetCase(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}

	key := services.GenerateCaseAttachmentKey(loaded.ID, file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return respondError(c, err)
	}

	attachment := models.CaseAttachment{
		CaseID:      loaded.ID,
		FileName:    file.Filename,
		MimeType:    result.MimeType,
		FileSize:    result.FileSize,
		StoragePath: result.Key,
	}
	if user := currentUser(c); user != nil {
		attachment.UploadedByID = &user.ID
	}

	if err := db.DB.Create(&attachment).Error; err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, attachment)
}

// DownloadCaseAttachmentHandler serves an attachment's content. Object
// storage gets a short-lived signed URL; local files are streamed.
func DownloadCaseAttachmentHandler(c echo.Context) error {
	attachment, err := services.GetCaseAttachment(db.DB, c.Param("id"), c.Param("attachmentID"))
	if err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()

	if _, ok := services.Storage.(*services.R2Storage); ok {
		signedURL, err := services.Storage.GetSignedURL(ctx, attachment.StoragePath, 15*time.Minute)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate download URL")
		}
		return c.Redirect(http.StatusTemporaryRedirect, signedURL)
	}

	reader, contentType, err := services.Storage.Get(ctx, attachment.StoragePath)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Attachment content not found")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	return c.Stream(http.StatusOK, contentType, reader)
}

// DeleteCaseAttachmentHandler removes an attachment and its stored blob
func DeleteCaseAttachmentHandler(c echo.Context) error {
	if err := services.DeleteCaseAttachment(c.Request().Context(), db.DB, c.Param("id"), c.Param("attachmentID")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
