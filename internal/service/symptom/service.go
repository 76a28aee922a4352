// Package symptom implements the rule-based symptom checker. It never
// produces a diagnosis, only an urgency hint plus a fixed disclaimer.
package symptom

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/access"
	apperrors "github.com/jwalitptl/patient-portal/pkg/errors"
	"github.com/jwalitptl/patient-portal/pkg/metrics"
	"github.com/jwalitptl/patient-portal/pkg/validator"
)

const (
	messageSevere = "Ihre Symptome deuten auf eine höhere Dringlichkeit hin. " +
		"Bitte vereinbaren Sie zeitnah einen Arzttermin oder suchen Sie bei starken Schmerzen " +
		"oder Atemnot sofort ärztliche Hilfe auf."
	messageModerateLasting = "Ihre Symptome bestehen bereits seit einiger Zeit. " +
		"Es wird empfohlen, in den nächsten Tagen einen Arzttermin zu vereinbaren."
	messageModerate = "Beobachten Sie Ihre Symptome weiter. " +
		"Bei Verschlechterung oder anhaltenden Beschwerden sollten Sie einen Arzt konsultieren."
	messageMild = "Niedrige Dringlichkeit – beobachten Sie Ihre Symptome. " +
		"Bei Verschlechterung oder wenn die Beschwerden anhalten, wenden Sie sich bitte an einen Arzt."

	addendumFever     = " Bei hohem Fieber über 39°C oder anhaltendem Fieber sollten Sie ärztlichen Rat einholen."
	addendumBreathing = " Bei Atembeschwerden oder Brustschmerzen suchen Sie bitte umgehend medizinische Hilfe."

	Disclaimer = "WICHTIG: Dieses Tool ersetzt keinen Arztbesuch und stellt keine medizinische Diagnose. " +
		"Bei Beschwerden wenden Sie sich bitte an eine Ärztin oder einen Arzt. " +
		"Bei akuten Notfällen wählen Sie den Notruf 112."
)

// Evaluate returns the urgency message for the given inputs. It is deterministic.
func Evaluate(category string, severity model.Severity, duration string) string {
	duration = strings.ToLower(duration)
	category = strings.ToLower(category)

	var msg string
	switch {
	case severity == model.SeveritySevere:
		msg = messageSevere
	case severity == model.SeverityModerate && (strings.Contains(duration, "tag") || strings.Contains(duration, "woche")):
		msg = messageModerateLasting
	case severity == model.SeverityModerate:
		msg = messageModerate
	default:
		msg = messageMild
	}

	switch {
	case strings.Contains(category, "fieber"):
		msg += addendumFever
	case strings.Contains(category, "atemnot"), strings.Contains(category, "brust"):
		msg += addendumBreathing
	}
	return msg
}

type Service struct {
	repo      repository.SymptomRepository
	validator validator.Validator
	metrics   *metrics.Metrics
}

func NewService(repo repository.SymptomRepository, v validator.Validator, m *metrics.Metrics) *Service {
	return &Service{repo: repo, validator: v, metrics: m}
}

// Check evaluates the request and stores the session. caller may be nil for
// anonymous use; a patient caller is linked to the session.
func (s *Service) Check(ctx context.Context, caller *access.Caller, req *model.SymptomCheckRequest) (*model.SymptomCheckResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	severity := model.ParseSeverity(strings.ToLower(strings.TrimSpace(req.Severity)))
	session := &model.SymptomCheckSession{
		SymptomsCategory: req.SymptomsCategory,
		Severity:         severity,
		Duration:         req.Duration,
		ResultMessage:    Evaluate(req.SymptomsCategory, severity, req.Duration),
	}
	if caller.IsPatient() {
		session.PatientID = caller.PatientID
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		log.Error().Err(err).Msg("failed to store symptom check session")
		return nil, apperrors.Internal(err)
	}
	s.metrics.SymptomChecks.WithLabelValues(string(severity)).Inc()

	return &model.SymptomCheckResponse{
		ResultMessage: session.ResultMessage,
		Disclaimer:    Disclaimer,
	}, nil
}
