package reply

import (
	"context"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"tg_giftbuyer/pkg/contextx"
	"tg_giftbuyer/pkg/errcodes"
	"tg_giftbuyer/pkg/logx"
	"tg_giftbuyer/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Error отвечает классифицированной ошибкой. Неклассифицированные ошибки
// становятся 500 без подробностей наружу.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status, defaultCode := classify(err)

	if status >= http.StatusInternalServerError {
		logger(ctx).Error("request failed", logx.Error(err))
	} else {
		logger(ctx).Warn("request rejected", logx.Error(err))
	}

	response := rest.Error{
		Code:      rest.ErrorCode(failure.Code(err).String()),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	}

	if response.Code == "" {
		response.Code = rest.ErrorCode(defaultCode.String())
	}

	JSON(ctx, w, status, response)
}

func classify(err error) (int, failure.ErrorCode) {
	switch {
	case failure.IsInvalidArgumentError(err):
		return http.StatusBadRequest, errcodes.ValidationError
	case failure.IsNotFoundError(err):
		return http.StatusNotFound, errcodes.NotFound
	case failure.IsUnauthorizedError(err):
		return http.StatusUnauthorized, ""
	case failure.IsForbiddenError(err):
		return http.StatusForbidden, errcodes.Forbidden
	case failure.IsConflictError(err):
		return http.StatusConflict, ""
	case failure.IsUnprocessableEntityError(err):
		return http.StatusUnprocessableEntity, ""
	default:
		return http.StatusInternalServerError, errcodes.InternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
