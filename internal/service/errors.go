package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
	pkgerrors "aerocode/backend/pkg/errors"
)

// ── 通用业务错误 ──

var (
	ErrInvalidArgument = pkgerrors.New(pkgerrors.KindInvalidArgument, 10001, "请求参数错误")
	ErrInvalidDate     = pkgerrors.New(pkgerrors.KindInvalidArgument, 10002, "日期格式错误，应为 YYYY-MM-DD")
	ErrForbidden       = pkgerrors.New(pkgerrors.KindForbidden, 10003, "权限不足")
)

// ── 飞机 ──

var (
	ErrAircraftNotFound     = pkgerrors.New(pkgerrors.KindNotFound, 20001, "飞机不存在")
	ErrAircraftCodeExists   = pkgerrors.New(pkgerrors.KindDuplicateKey, 20002, "飞机编码已存在")
	ErrAircraftInvalidField = pkgerrors.New(pkgerrors.KindInvalidArgument, 20003, "飞机类别、载客量或航程无效")
)

// ── 零件 ──

var (
	ErrPartNotFound       = pkgerrors.New(pkgerrors.KindNotFound, 21001, "零件不存在")
	ErrPartNameExists     = pkgerrors.New(pkgerrors.KindDuplicateKey, 21002, "该飞机下已存在同名零件")
	ErrPartFinalStatus    = pkgerrors.New(pkgerrors.KindInvalidTransition, 21003, "零件已处于最终状态")
	ErrPartInvalidOrigin  = pkgerrors.New(pkgerrors.KindInvalidArgument, 21004, "零件来源无效")
	ErrPartStatusConflict = pkgerrors.New(pkgerrors.KindInvalidTransition, 21005, "零件状态已被修改，请刷新后重试")
)

// ── 生产阶段 ──

var (
	ErrStageNotFound      = pkgerrors.New(pkgerrors.KindNotFound, 22001, "阶段不存在")
	ErrStageNameExists    = pkgerrors.New(pkgerrors.KindDuplicateKey, 22002, "该飞机下已存在同名阶段")
	ErrStageNotPending    = pkgerrors.New(pkgerrors.KindInvalidTransition, 22003, "只有待开始的阶段可以开始")
	ErrStageNotInProgress = pkgerrors.New(pkgerrors.KindInvalidTransition, 22004, "只有进行中的阶段可以完成")
	ErrAlreadyAssigned    = pkgerrors.New(pkgerrors.KindDuplicateKey, 22005, "员工已分配到该阶段")
	ErrAssignmentNotFound = pkgerrors.New(pkgerrors.KindNotFound, 22006, "员工未分配到该阶段")
)

// ── 员工与认证 ──

var (
	ErrEmployeeNotFound    = pkgerrors.New(pkgerrors.KindNotFound, 23001, "员工不存在")
	ErrEmployeeCPFExists   = pkgerrors.New(pkgerrors.KindDuplicateKey, 23002, "CPF 已存在")
	ErrEmployeeLoginExists = pkgerrors.New(pkgerrors.KindDuplicateKey, 23003, "登录名已存在")
	ErrInvalidCredentials  = pkgerrors.New(pkgerrors.KindUnauthorized, 23004, "用户名或密码错误")
	ErrInvalidLevel        = pkgerrors.New(pkgerrors.KindInvalidArgument, 23005, "权限等级无效")
	ErrEmployeeHasTests    = pkgerrors.New(pkgerrors.KindInvalidArgument, 23006, "该员工存在测试记录，无法删除")
	ErrEmployeeSelfDelete  = pkgerrors.New(pkgerrors.KindInvalidArgument, 23007, "不能删除当前登录的员工")
	ErrSessionInvalid      = pkgerrors.New(pkgerrors.KindUnauthorized, 23008, "会话已失效")
)

// ── 质量测试 ──

var (
	ErrTestNotFound      = pkgerrors.New(pkgerrors.KindNotFound, 24001, "测试记录不存在")
	ErrTestInvalidResult = pkgerrors.New(pkgerrors.KindInvalidArgument, 24002, "测试结果无效")
)

// ── 报告 ──

var (
	ErrReportNotFound   = pkgerrors.New(pkgerrors.KindNotFound, 25001, "报告不存在")
	ErrReportIncomplete = pkgerrors.New(pkgerrors.KindInvalidArgument, 25002, "客户、交付日期与飞机编码均不能为空")
)

// ── 导出 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

// ── 内部辅助方法 ──

// translateStoreError 将数据库约束错误映射为领域错误，其余原样返回
func translateStoreError(err error, duplicate, foreignKey error) error {
	switch {
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	case foreignKey != nil && errors.Is(err, gorm.ErrForeignKeyViolated):
		return foreignKey
	}
	return err
}

// isDomainError 领域错误无需再记录日志
func isDomainError(err error) bool {
	_, ok := pkgerrors.As(err)
	return ok
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
