package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
)

// Problem is a simplified RFC 7807 body.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// StatusOf maps a domain kind to its HTTP status. Conflicts are reported as
// 400 like the rest of the precondition failures; the type field tells them
// apart.
func StatusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindConflict, domain.KindInvalidTransition, domain.KindShiftClosed, domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindForbidden, domain.KindRestaurantClosed:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func WriteProblem(c *gin.Context, code int, typ, detail string) {
	c.AbortWithStatusJSON(code, Problem{
		Type:   typ,
		Title:  http.StatusText(code),
		Status: code,
		Detail: detail,
	})
}

// Fail writes err as a problem. Infrastructure errors are logged and hidden
// behind a generic 500.
func Fail(c *gin.Context, lg *logger.Logger, action string, err error) {
	kind := domain.KindOf(err)
	if kind == "" {
		RequestLogger(c, lg).Error(action, err, map[string]any{"path": c.FullPath()})
		WriteProblem(c, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	WriteProblem(c, StatusOf(kind), string(kind), err.Error())
}

// BindJSON decodes the body or writes a validation problem.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		WriteProblem(c, http.StatusBadRequest, string(domain.KindValidation), "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// ParamID parses a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		WriteProblem(c, http.StatusBadRequest, string(domain.KindValidation), "invalid "+name)
		return 0, false
	}
	return id, true
}
