package service

import (
	"sort"

	"aerocode/backend/internal/model"
)

// 能力标识：路由与客户端视图按此授权
const (
	ActionAircraftView   = "aircraft.view"
	ActionAircraftManage = "aircraft.manage"
	ActionPartView       = "part.view"
	ActionPartManage     = "part.manage"
	ActionStageView      = "stage.view"
	ActionStageManage    = "stage.manage"
	ActionTestView       = "test.view"
	ActionTestManage     = "test.manage"
	ActionEmployeeView   = "employee.view"
	ActionEmployeeManage = "employee.manage"
	ActionReportView     = "report.view"
	ActionReportManage   = "report.manage"
	ActionMetricsView    = "metrics.view"
)

var (
	allLevels     = []int{model.LevelAdmin, model.LevelEngineer, model.LevelOperator}
	adminOperator = []int{model.LevelAdmin, model.LevelOperator}
	adminEngineer = []int{model.LevelAdmin, model.LevelEngineer}
	adminOnly     = []int{model.LevelAdmin}
)

// capabilityTable 能力 → 允许的权限等级
var capabilityTable = map[string][]int{
	ActionAircraftView:   allLevels,
	ActionPartView:       allLevels,
	ActionStageView:      allLevels,
	ActionTestView:       allLevels,
	ActionAircraftManage: adminOperator,
	ActionPartManage:     adminOperator,
	ActionStageManage:    adminEngineer,
	ActionTestManage:     adminEngineer,
	ActionEmployeeView:   adminEngineer,
	ActionEmployeeManage: adminEngineer,
	ActionReportView:     adminEngineer,
	ActionReportManage:   adminEngineer,
	ActionMetricsView:    adminOnly,
}

// Can 判断权限等级是否拥有某项能力，未知能力一律拒绝
func Can(level int, action string) bool {
	for _, lv := range capabilityTable[action] {
		if lv == level {
			return true
		}
	}
	return false
}

// Capabilities 返回某权限等级拥有的全部能力（字典序）
func Capabilities(level int) []string {
	caps := make([]string, 0, len(capabilityTable))
	for action := range capabilityTable {
		if Can(level, action) {
			caps = append(caps, action)
		}
	}
	sort.Strings(caps)
	return caps
}
