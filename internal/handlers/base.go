package handlers

import (
	"errors"
	"net/http"
	"strings"

	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ListEnvelope is the response body for every paginated collection.
type ListEnvelope struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func Paginated(c *gin.Context, items interface{}, total int64, p utils.Pagination) {
	c.JSON(http.StatusOK, ListEnvelope{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: utils.TotalPages(total, p.PageSize),
	})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// FieldErrors renders a 400 with a per-field error map.
func FieldErrors(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

// BindingErrors turns gin binding failures into the per-field 400 shape.
func BindingErrors(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
		FieldErrors(c, fields)
		return
	}
	JSONError(c, http.StatusBadRequest, "invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}
