package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
)

// CalendarService 阶段期限日历
type CalendarService interface {
	// StageCalendar 每个阶段期限生成一个全天 VEVENT；aircraftCode 为空时包含全部飞机
	StageCalendar(ctx context.Context, aircraftCode string) (*bytes.Buffer, string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) StageCalendar(ctx context.Context, aircraftCode string) (*bytes.Buffer, string, error) {
	if aircraftCode != "" {
		if err := requireAircraft(ctx, s.repo, aircraftCode); err != nil {
			if !isDomainError(err) {
				s.logger.Error("查询飞机失败", zap.String("code", aircraftCode), zap.Error(err))
			}
			return nil, "", err
		}
	}

	stages, err := s.repo.Stage.ListWithEmployees(ctx, aircraftCode)
	if err != nil {
		s.logger.Error("查询阶段失败", zap.String("code", aircraftCode), zap.Error(err))
		return nil, "", err
	}

	name := "Aerocode 阶段期限"
	filename := "stages.ics"
	if aircraftCode != "" {
		name = fmt.Sprintf("%s 阶段期限", aircraftCode)
		filename = fmt.Sprintf("stages_%s.ics", aircraftCode)
	}

	cal := buildStageCalendar(name, stages, s.now())
	return bytes.NewBufferString(cal.Serialize()), filename, nil
}

func buildStageCalendar(name string, stages []model.Stage, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Aerocode//Stage Deadlines//ZH")
	cal.SetXWRCalName(name)

	for i := range stages {
		st := &stages[i]
		evt := cal.AddEvent(fmt.Sprintf("stage-%s@aerocode", st.StageID))
		evt.SetDtStampTime(stamp.UTC())
		evt.SetSummary(fmt.Sprintf("[%s] %s", st.AircraftCode, st.Name))
		evt.SetDescription(fmt.Sprintf("状态: %s\n负责员工: %s", stageStatusLabel(st.Status), stageEmployeeNames(st)))
		evt.SetAllDayStartAt(st.Deadline)
		evt.SetAllDayEndAt(st.Deadline.AddDate(0, 0, 1))
	}
	return cal
}
