package errors

import "errors"

// ErrOptimisticLock 条件更新未命中：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// Kind 领域错误类别，由 API 层映射为 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicateKey
	KindInvalidArgument
	KindInvalidTransition
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error 带业务码的领域错误
// 各 Service 以包级变量声明，调用方用 errors.Is 比较具体错误、用 KindOf 取类别
type Error struct {
	Kind    Kind
	Code    int
	Message string
}

// New 创建领域错误
func New(kind Kind, code int, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string { return e.Message }

// KindOf 提取错误类别，非领域错误一律视为 KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As 提取领域错误
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
