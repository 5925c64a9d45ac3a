// Package workflow holds the request lifecycle legality table.
//
// Every status change goes through Next: an edge missing from the table is an
// illegal move, whatever the caller.
package workflow

import (
	"errors"
	"fmt"

	"medrequest_xpto/internal/domain/entities"
)

type Action string

const (
	ActionAnalysisPassed     Action = "analysis_passed"
	ActionReanalyze          Action = "reanalyze"
	ActionApprove            Action = "approve"
	ActionReject             Action = "reject"
	ActionQuote              Action = "quote"
	ActionPay                Action = "pay"
	ActionQueue              Action = "queue"
	ActionAcceptConsultation Action = "accept_consultation"
	ActionStartConsultation  Action = "start_consultation"
	ActionFinishConsultation Action = "finish_consultation"
	ActionSign               Action = "sign"
	ActionRevertSign         Action = "revert_sign"
	ActionDeliver            Action = "deliver"
	ActionCancel             Action = "cancel"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrRoleNotAllowed    = errors.New("role not allowed for action")
)

type key struct {
	Type   entities.RequestType
	From   entities.RequestStatus
	Action Action
}

var (
	documentTypes = []entities.RequestType{entities.RequestTypePrescription, entities.RequestTypeExam}
	allTypes      = []entities.RequestType{entities.RequestTypePrescription, entities.RequestTypeExam, entities.RequestTypeConsultation}
	consultation  = []entities.RequestType{entities.RequestTypeConsultation}
)

type edge struct {
	types  []entities.RequestType
	from   []entities.RequestStatus
	action Action
	to     entities.RequestStatus
}

var edges = []edge{
	{documentTypes, []entities.RequestStatus{entities.RequestStatusSubmitted}, ActionAnalysisPassed, entities.RequestStatusInReview},
	{documentTypes, []entities.RequestStatus{entities.RequestStatusSubmitted, entities.RequestStatusInReview}, ActionReanalyze, ""},
	{documentTypes, []entities.RequestStatus{entities.RequestStatusInReview}, ActionApprove, entities.RequestStatusApprovedPendingPayment},
	{documentTypes, []entities.RequestStatus{entities.RequestStatusSubmitted, entities.RequestStatusInReview}, ActionReject, entities.RequestStatusRejected},
	{consultation, []entities.RequestStatus{entities.RequestStatusSubmitted}, ActionQuote, entities.RequestStatusApprovedPendingPayment},
	{allTypes, []entities.RequestStatus{entities.RequestStatusApprovedPendingPayment}, ActionPay, entities.RequestStatusPaid},
	{consultation, []entities.RequestStatus{entities.RequestStatusPaid}, ActionQueue, entities.RequestStatusSearchingDoctor},
	{consultation, []entities.RequestStatus{entities.RequestStatusSearchingDoctor}, ActionAcceptConsultation, entities.RequestStatusConsultationReady},
	{consultation, []entities.RequestStatus{entities.RequestStatusConsultationReady}, ActionStartConsultation, entities.RequestStatusInConsultation},
	{consultation, []entities.RequestStatus{entities.RequestStatusInConsultation}, ActionFinishConsultation, entities.RequestStatusConsultationFinished},
	{documentTypes, []entities.RequestStatus{entities.RequestStatusPaid}, ActionSign, entities.RequestStatusSigned},
	{documentTypes, []entities.RequestStatus{entities.RequestStatusSigned}, ActionRevertSign, entities.RequestStatusPaid},
	{documentTypes, []entities.RequestStatus{entities.RequestStatusSigned}, ActionDeliver, entities.RequestStatusDelivered},
	{allTypes, []entities.RequestStatus{entities.RequestStatusSubmitted, entities.RequestStatusInReview, entities.RequestStatusApprovedPendingPayment}, ActionCancel, entities.RequestStatusCancelled},
}

// transitions maps (type, from, action) to the destination status. A non-moving
// action maps to its own origin.
var transitions = buildTransitions()

func buildTransitions() map[key]entities.RequestStatus {
	m := make(map[key]entities.RequestStatus)
	for _, e := range edges {
		for _, t := range e.types {
			for _, from := range e.from {
				to := e.to
				if to == "" {
					to = from
				}
				m[key{Type: t, From: from, Action: e.action}] = to
			}
		}
	}
	return m
}

var roles = map[Action][]entities.Role{
	ActionAnalysisPassed:     {entities.RoleSystem},
	ActionReanalyze:          {entities.RolePatient, entities.RoleDoctor},
	ActionApprove:            {entities.RoleDoctor},
	ActionReject:             {entities.RoleDoctor, entities.RoleAdmin},
	ActionQuote:              {entities.RoleSystem},
	ActionPay:                {entities.RoleSystem},
	ActionQueue:              {entities.RoleSystem},
	ActionAcceptConsultation: {entities.RoleDoctor},
	ActionStartConsultation:  {entities.RoleDoctor, entities.RolePatient},
	ActionFinishConsultation: {entities.RoleDoctor},
	ActionSign:               {entities.RoleDoctor},
	ActionRevertSign:         {entities.RoleSystem},
	ActionDeliver:            {entities.RoleSystem},
	ActionCancel:             {entities.RolePatient, entities.RoleAdmin},
}

var terminal = map[entities.RequestStatus]bool{
	entities.RequestStatusDelivered:            true,
	entities.RequestStatusRejected:             true,
	entities.RequestStatusCancelled:            true,
	entities.RequestStatusConsultationFinished: true,
}

// Next returns the status reached by applying action, or ErrIllegalTransition.
func Next(t entities.RequestType, from entities.RequestStatus, action Action) (entities.RequestStatus, error) {
	to, ok := transitions[key{Type: t, From: from, Action: action}]
	if !ok {
		return "", fmt.Errorf("%w: %s %s from %s", ErrIllegalTransition, t, action, from)
	}
	return to, nil
}

func CanApply(t entities.RequestType, from entities.RequestStatus, action Action) bool {
	_, ok := transitions[key{Type: t, From: from, Action: action}]
	return ok
}

func AllowedRoles(action Action) []entities.Role {
	out := make([]entities.Role, len(roles[action]))
	copy(out, roles[action])
	return out
}

// Authorize reports ErrRoleNotAllowed when role may not perform action.
func Authorize(role entities.Role, action Action) error {
	for _, r := range roles[action] {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot %s", ErrRoleNotAllowed, role, action)
}

func IsTerminal(s entities.RequestStatus) bool { return terminal[s] }

// Actions lists every action known to the table.
func Actions() []Action {
	out := make([]Action, 0, len(roles))
	for _, e := range edges {
		seen := false
		for _, a := range out {
			if a == e.action {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, e.action)
		}
	}
	return out
}
