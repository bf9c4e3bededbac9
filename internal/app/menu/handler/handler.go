package handler

import (
	"errors"
	"net/http"
	"time"

	"muzzatheory/internal/app/menu/entity"
	"muzzatheory/internal/app/menu/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Форматы даты окончания оферты, принимаемые API
var offerDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// MenuHandler обрабатывает HTTP запросы меню
type MenuHandler struct {
	menuService *service.MenuService
	validator   *validator.Validate
}

// NewMenuHandler создает новый handler меню
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	v := validator.New()

	// futuredate: строка парсится одним из поддерживаемых форматов
	// и дата строго в будущем
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		t, ok := parseOfferDate(fl.Field().String())
		return ok && t.After(time.Now())
	})

	return &MenuHandler{
		menuService: menuService,
		validator:   v,
	}
}

func parseOfferDate(value string) (time.Time, bool) {
	for _, layout := range offerDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatValidationErrors превращает ошибки валидатора в карту поле->сообщение
func formatValidationErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["body"] = err.Error()
		return fieldErrors
	}

	for _, fe := range validationErrors {
		fieldErrors[fe.Field()] = validationMessage(fe)
	}

	return fieldErrors
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		if fe.Kind().String() == "string" {
			return "value is too short (min " + fe.Param() + " characters)"
		}
		return "value must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return "value is too long (max " + fe.Param() + " characters)"
		}
		return "value must be at most " + fe.Param()
	case "url":
		return "value must be a valid URL"
	case "futuredate":
		return "value must be a valid date in the future"
	default:
		return "value is invalid"
	}
}

// handleServiceError отдает HTTP статус по типу ошибки бизнес-логики
func (h *MenuHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrDuplicateOffer):
		c.JSON(http.StatusConflict, entity.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrCategoryHasProducts):
		c.JSON(http.StatusConflict, entity.ErrorResponse{
			Error: err.Error(),
			Code:  "REFERENCE_CONSTRAINT",
		})
	default:
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: err.Error()})
	}
}
