package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"streetbite_backend/internal/middleware"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive path id and writes the 400 itself when it is malformed.
func parseIDParam(c *gin.Context, what string) (int64, bool) {
	id, err := utils.StrToPositiveID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+what+" ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

// currentUserID reads the admin id set by the auth middleware.
func currentUserID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.LogError(errors.New("userID not found in context"), "currentUserID: auth middleware did not run")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return 0, false
	}
	return userID, true
}

// optionalImage returns the "image" part of a multipart request, or nil for JSON bodies and forms without one.
func optionalImage(c *gin.Context) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}
