package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"

	"realty-client/internal/biddingerrors"
	"realty-client/internal/models"
	"realty-client/utils"
)

const currentUserKey = "current_user"

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// DecodeForm decodes url values into a schema-tagged struct
func DecodeForm(dst any, values url.Values) error {
	if err := formDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("decode form: %w", err)
	}
	return nil
}

// ParseID reads a positive integer path parameter
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.JSONDetail(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

// SetCurrentUser stores the authenticated user on the request context
func SetCurrentUser(c *gin.Context, u models.User) {
	c.Set(currentUserKey, u)
}

// CurrentUser returns the authenticated user, if any
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "No active account found with the given credentials"
	case errors.Is(err, biddingerrors.ErrInvalidToken):
		return http.StatusUnauthorized, "Token is invalid or expired"
	case errors.Is(err, biddingerrors.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to perform this action."
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "Аукцион не найден"
	case errors.Is(err, biddingerrors.ErrPropertyNotFound):
		return http.StatusNotFound, "Объявление не найдено"
	case errors.Is(err, biddingerrors.ErrUserNotFound):
		return http.StatusNotFound, "Пользователь не найден"
	case errors.Is(err, biddingerrors.ErrFavoriteNotFound):
		return http.StatusNotFound, "Объявление не в избранном"
	case errors.Is(err, biddingerrors.ErrFavoriteExists):
		return http.StatusBadRequest, "Объявление уже в избранном"
	case errors.Is(err, biddingerrors.ErrUserExists):
		return http.StatusBadRequest, "Пользователь с такими данными уже существует"
	case errors.Is(err, biddingerrors.ErrAuctionNotActive):
		return http.StatusBadRequest, "Аукцион не активен"
	case errors.Is(err, biddingerrors.ErrOrganizerBid):
		return http.StatusBadRequest, "Организатор не может делать ставки"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusBadRequest, "Ставка должна быть выше текущей цены"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "Неверный формат суммы"
	case errors.Is(err, biddingerrors.ErrInvalidInput):
		return http.StatusBadRequest, inputDetail(err)
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// inputDetail extracts the reason appended to an invalid-input error
func inputDetail(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, " - "); i >= 0 {
		return msg[i+3:]
	}
	return biddingerrors.ErrInvalidInput.Error()
}

// isAuthError reports errors the API answers in the {"detail": ...} shape
func isAuthError(err error) bool {
	return errors.Is(err, biddingerrors.ErrInvalidCredentials) ||
		errors.Is(err, biddingerrors.ErrInvalidToken) ||
		errors.Is(err, biddingerrors.ErrForbidden)
}

// RespondError writes the mapped error payload and logs the failure
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	if isAuthError(err) {
		utils.JSONDetail(c, status, message)
	} else {
		utils.JSONError(c, status, message)
	}

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
