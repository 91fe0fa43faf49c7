package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var kindStatus = map[Kind]int{
	KindInvalidTransition:  http.StatusConflict,
	KindUnauthorized:       http.StatusForbidden,
	KindValidation:         http.StatusBadRequest,
	KindSlotConflict:       http.StatusConflict,
	KindAlreadyNegotiating: http.StatusConflict,
	KindNotFound:           http.StatusNotFound,
}

var kindMessage = map[Kind]string{
	KindInvalidTransition:  "Ação não permitida para o status atual do agendamento.",
	KindUnauthorized:       "Você não tem permissão para esta ação.",
	KindValidation:         "Dados inválidos.",
	KindSlotConflict:       "Conflito de horário com outro agendamento.",
	KindAlreadyNegotiating: "Já existe uma proposta de reagendamento pendente.",
	KindNotFound:           "Registro não encontrado.",
}

// StatusFor returns the HTTP status a business kind is reported with.
func StatusFor(kind Kind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusBadRequest
}

// FromError writes err as a JSON response. Business errors keep their
// code; anything else is reported as an internal failure.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		c.JSON(StatusFor(be.Kind), HTTPError{
			Code:    be.Code,
			Kind:    be.Kind,
			Message: kindMessage[be.Kind],
		})
		return
	}
	Internal(c, "internal_error", "Erro interno.")
}

// IsUniqueViolation reports a postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
