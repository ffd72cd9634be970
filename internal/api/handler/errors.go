package handler

import (
	"github.com/gin-gonic/gin"

	pkgerrors "aerocode/backend/pkg/errors"
	"aerocode/backend/pkg/response"
)

// handleError 领域错误按类别映射 HTTP 状态码，业务码与提示取自错误本身
// 非领域错误返回 500，原始错误挂到 gin.Context 由日志中间件记录
func handleError(c *gin.Context, err error) {
	domainErr, ok := pkgerrors.As(err)
	if !ok {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	switch domainErr.Kind {
	case pkgerrors.KindNotFound:
		response.NotFound(c, domainErr.Code, domainErr.Message)
	case pkgerrors.KindDuplicateKey, pkgerrors.KindInvalidArgument, pkgerrors.KindInvalidTransition:
		response.BadRequest(c, domainErr.Code, domainErr.Message)
	case pkgerrors.KindUnauthorized:
		response.Unauthorized(c, domainErr.Code, domainErr.Message)
	case pkgerrors.KindForbidden:
		response.Forbidden(c, domainErr.Code, domainErr.Message)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

func badRequest(c *gin.Context) {
	response.BadRequest(c, 10001, "参数校验失败")
}
