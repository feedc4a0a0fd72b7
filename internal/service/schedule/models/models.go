package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модели

// RuleInput одно правило рабочих часов в запросе
type RuleInput struct {
	Weekdays  []int  `json:"weekdays"`  // ISO: 1 = понедельник ... 7 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00" или "24:00" для конца дня
}

// ReplaceScheduleRequest запрос на полную замену расписания мастера
type ReplaceScheduleRequest struct {
	UserID  int64       `json:"userId"`
	StaffID int64       `json:"staffId"`
	Rules   []RuleInput `json:"rules"`
}

// CreateAbsenceRequest запрос на создание отсутствия
type CreateAbsenceRequest struct {
	UserID  int64     `json:"userId"`
	StaffID int64     `json:"staffId"`
	Kind    string    `json:"kind"` // vacation, sick, break, other
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Comment *string   `json:"comment,omitempty"`
}

// DeleteAbsenceRequest запрос на удаление отсутствия
type DeleteAbsenceRequest struct {
	UserID    int64 `json:"userId"`
	AbsenceID int64 `json:"absenceId"`
}

// Response модели

// RuleResponse одно правило рабочих часов в ответе
type RuleResponse struct {
	ID        int64  `json:"id"`
	Weekdays  []int  `json:"weekdays"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduleResponse ответ с расписанием мастера
type ScheduleResponse struct {
	StaffID int64          `json:"staffId"`
	Rules   []RuleResponse `json:"rules"`
}

// AbsenceResponse ответ с данными отсутствия
type AbsenceResponse struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staffId"`
	Kind      string    `json:"kind"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AbsenceListResponse ответ со списком отсутствий
type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// Методы конвертации

// ToDomainRule конвертирует RuleInput в domain модель
func (r *RuleInput) ToDomainRule(staffID int64) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		StaffID:   staffID,
		Weekdays:  r.Weekdays,
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
	}
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.WorkingHoursRule) RuleResponse {
	return RuleResponse{
		ID:        rule.ID,
		Weekdays:  rule.Weekdays,
		StartTime: rule.StartTime.String(),
		EndTime:   rule.EndTime.String(),
	}
}

// FromDomainRules конвертирует список правил в ответ с расписанием
func FromDomainRules(staffID int64, rules []*domain.WorkingHoursRule) *ScheduleResponse {
	resp := &ScheduleResponse{
		StaffID: staffID,
		Rules:   make([]RuleResponse, len(rules)),
	}

	for i, rule := range rules {
		resp.Rules[i] = FromDomainRule(rule)
	}

	return resp
}

// ToDomainAbsence конвертирует CreateAbsenceRequest в domain модель
func (r *CreateAbsenceRequest) ToDomainAbsence() *domain.Absence {
	return &domain.Absence{
		StaffID: r.StaffID,
		Kind:    domain.AbsenceKind(r.Kind),
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Comment: r.Comment,
	}
}

// FromDomainAbsence конвертирует domain модель в DTO
func FromDomainAbsence(a *domain.Absence) *AbsenceResponse {
	if a == nil {
		return nil
	}

	return &AbsenceResponse{
		ID:        a.ID,
		StaffID:   a.StaffID,
		Kind:      string(a.Kind),
		StartAt:   a.StartAt,
		EndAt:     a.EndAt,
		Comment:   a.Comment,
		CreatedAt: a.CreatedAt,
	}
}

// FromDomainAbsenceList конвертирует список domain моделей в DTO
func FromDomainAbsenceList(absences []*domain.Absence) *AbsenceListResponse {
	if absences == nil {
		return &AbsenceListResponse{
			Absences: []AbsenceResponse{},
		}
	}

	resp := &AbsenceListResponse{
		Absences: make([]AbsenceResponse, len(absences)),
	}

	for i, absence := range absences {
		if absenceResp := FromDomainAbsence(absence); absenceResp != nil {
			resp.Absences[i] = *absenceResp
		}
	}

	return resp
}
