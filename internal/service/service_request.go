// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/models"
)

// requestService implements the repair request lifecycle: registration,
// role-gated updates with a validated status transition, and deletion.
// Every successful write is reported to the event publisher and the
// lifecycle recorder.
type requestService struct {
	requestRepository store.RequestRepository
	userRepository    store.UserRepository

	publisher EventPublisher
	recorder  LifecycleRecorder

	// allowFreeStatus disables transition checking. Any known status may
	// then follow any other.
	allowFreeStatus bool

	now    func() time.Time
	logger *logger.Logger
}

// NewRequestService constructs a [RequestService]. A nil publisher or
// recorder disables the corresponding side effect.
func NewRequestService(
	requestRepository store.RequestRepository,
	userRepository store.UserRepository,
	publisher EventPublisher,
	recorder LifecycleRecorder,
	cfg config.App,
	logger *logger.Logger,
) RequestService {
	return &requestService{
		requestRepository: requestRepository,
		userRepository:    userRepository,
		publisher:         publisher,
		recorder:          recorder,
		allowFreeStatus:   cfg.AllowFreeStatus,
		now:               time.Now,
		logger:            logger,
	}
}

// CreateRequest registers a repair request. The start date is today's server
// date and the status is always New. A client may only register requests
// for themself.
func (s *requestService) CreateRequest(ctx context.Context, caller models.Caller, input models.CreateRequestInput) (models.RepairRequest, error) {
	log := logger.FromContext(ctx)

	if err := requireRole(caller, RequestCreateRoles...); err != nil {
		return models.RepairRequest{}, err
	}

	request := models.RepairRequest{
		StartDate:          models.NewDate(s.now()),
		EquipmentType:      strings.TrimSpace(input.EquipmentType),
		EquipmentModel:     strings.TrimSpace(input.EquipmentModel),
		ProblemDescription: strings.TrimSpace(input.ProblemDescription),
		Status:             models.StatusNew,
		ClientID:           input.ClientID,
	}

	if request.EquipmentType == "" || request.EquipmentModel == "" || request.ProblemDescription == "" || request.ClientID <= 0 {
		return models.RepairRequest{}, invalidInput("missing required fields: climate_tech_type, climate_tech_model, problem_description, client_id")
	}

	if caller.Role == models.RoleClient && request.ClientID != caller.UserID {
		return models.RepairRequest{}, forbiddenOwner(caller, "clients may only create requests for themselves")
	}

	if _, err := s.userRepository.GetUserByID(ctx, request.ClientID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.RepairRequest{}, invalidInput("client %d does not exist", request.ClientID)
		}
		return models.RepairRequest{}, fmt.Errorf("create request: %w", err)
	}

	created, err := s.requestRepository.CreateRequest(ctx, request)
	if err != nil {
		log.Err(err).Str("func", "requestService.CreateRequest").Int64("client_id", request.ClientID).Msg("request creation ended with error")
		if errors.Is(err, store.ErrReferenceNotFound) {
			return models.RepairRequest{}, invalidInput("client %d does not exist", request.ClientID)
		}
		return models.RepairRequest{}, fmt.Errorf("create request: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RequestCreated()
	}
	s.publish(ctx, models.RequestEvent{
		Type:      models.EventRequestCreated,
		RequestID: created.RequestID,
		ClientID:  created.ClientID,
		NewStatus: created.Status,
	})

	log.Info().
		Str("func", "requestService.CreateRequest").
		Int64("request_id", created.RequestID).
		Int64("created_by", caller.UserID).
		Msg("repair request created")
	return created, nil
}

// GetRequest returns a request. Clients may only read their own requests.
func (s *requestService) GetRequest(ctx context.Context, caller models.Caller, requestID int64) (models.RepairRequest, error) {
	request, err := s.requestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.RepairRequest{}, fmt.Errorf("get request: %w", err)
	}

	if !canReadRequest(caller, request) {
		return models.RepairRequest{}, forbiddenOwner(caller, "access denied")
	}

	return request, nil
}

// ListRequests returns one page of requests visible to caller. Clients only
// see their own requests.
func (s *requestService) ListRequests(ctx context.Context, caller models.Caller, query models.RequestQuery) (models.RequestPage, error) {
	if !caller.Role.IsKnown() {
		return models.RequestPage{}, forbiddenRole(caller, models.Roles()...)
	}

	filter := models.RequestFilter{
		Page:  query.Page,
		Limit: query.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Page > models.MaxPage {
		filter.Page = models.MaxPage
	}
	if filter.Limit < 1 {
		filter.Limit = models.DefaultPageLimit
	}
	if filter.Limit > models.MaxPageLimit {
		filter.Limit = models.MaxPageLimit
	}

	if caller.Role == models.RoleClient {
		clientID := caller.UserID
		filter.ClientID = &clientID
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		parsed, _ := models.ParseStatus(status)
		filter.Status = &parsed
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(query.Search), 10, 64); err == nil {
		filter.RequestID = &id
	}

	requests, total, err := s.requestRepository.ListRequests(ctx, filter)
	if err != nil {
		return models.RequestPage{}, fmt.Errorf("list requests: %w", err)
	}

	return models.RequestPage{
		Data:       requests,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// UpdateRequest applies a partial update.
//
// Only fields present in input are touched. An explicit null clears the
// specialist, the parts note or the completion date; the status cannot be
// cleared. A status change must follow the transition table unless free
// status editing is enabled.
func (s *requestService) UpdateRequest(ctx context.Context, caller models.Caller, requestID int64, input models.UpdateRequestInput) (models.RepairRequest, error) {
	log := logger.FromContext(ctx)

	if err := requireRole(caller, RequestUpdateRoles...); err != nil {
		return models.RepairRequest{}, err
	}

	current, err := s.requestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.RepairRequest{}, fmt.Errorf("update request: %w", err)
	}

	update, err := s.buildUpdate(ctx, current, input)
	if err != nil {
		return models.RepairRequest{}, err
	}
	if update.IsEmpty() {
		return current, nil
	}

	updated, err := s.requestRepository.UpdateRequest(ctx, requestID, update)
	if err != nil {
		log.Err(err).Str("func", "requestService.UpdateRequest").Int64("request_id", requestID).Msg("request update ended with error")
		if errors.Is(err, store.ErrReferenceNotFound) {
			return models.RepairRequest{}, invalidInput("specialist does not exist")
		}
		if errors.Is(err, store.ErrConstraintViolation) {
			return models.RepairRequest{}, invalidInput("completion_date cannot be before start_date")
		}
		return models.RepairRequest{}, fmt.Errorf("update request: %w", err)
	}

	if update.Status != nil && s.recorder != nil {
		s.recorder.StatusChanged(current.Status, updated.Status)
	}
	s.publish(ctx, models.RequestEvent{
		Type:      models.EventRequestUpdated,
		RequestID: updated.RequestID,
		ClientID:  updated.ClientID,
		MasterID:  updated.MasterID,
		OldStatus: current.Status,
		NewStatus: updated.Status,
	})

	log.Info().
		Str("func", "requestService.UpdateRequest").
		Int64("request_id", requestID).
		Str("old_status", string(current.Status)).
		Str("new_status", string(updated.Status)).
		Int64("updated_by", caller.UserID).
		Msg("repair request updated")
	return updated, nil
}

func (s *requestService) buildUpdate(ctx context.Context, current models.RepairRequest, input models.UpdateRequestInput) (models.RequestUpdate, error) {
	var update models.RequestUpdate

	if input.Status.Set {
		raw := strings.TrimSpace(input.Status.Value)
		if input.Status.Null || raw == "" {
			return models.RequestUpdate{}, invalidInput("request_status cannot be cleared")
		}
		next, ok := models.ParseStatus(raw)
		if !ok {
			return models.RequestUpdate{}, invalidInput("unknown request_status %q", raw)
		}
		if next != current.Status {
			if !s.allowFreeStatus && !current.Status.CanTransitionTo(next) {
				return models.RequestUpdate{}, fmt.Errorf("%w: %q -> %q", ErrIllegalStatusTransition, current.Status, next)
			}
			update.Status = &next
		}
	}

	if input.MasterID.Set {
		if input.MasterID.Null {
			update.MasterID = models.Null[int64]()
		} else {
			if err := s.checkSpecialist(ctx, input.MasterID.Value); err != nil {
				return models.RequestUpdate{}, err
			}
			update.MasterID = models.Some(input.MasterID.Value)
		}
	}

	if input.RepairParts.Set {
		parts := strings.TrimSpace(input.RepairParts.Value)
		if input.RepairParts.Null || parts == "" {
			update.RepairParts = models.Null[string]()
		} else {
			update.RepairParts = models.Some(parts)
		}
	}

	if input.CompletionDate.Set {
		if input.CompletionDate.Null {
			update.CompletionDate = models.Null[models.Date]()
		} else {
			completion := models.NewDate(input.CompletionDate.Value.Time)
			if completion.Before(current.StartDate.Time) {
				return models.RequestUpdate{}, invalidInput("completion_date cannot be before start_date")
			}
			update.CompletionDate = models.Some(completion)
		}
	}

	return update, nil
}

func (s *requestService) checkSpecialist(ctx context.Context, userID int64) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return invalidInput("specialist %d does not exist", userID)
		}
		return fmt.Errorf("check specialist: %w", err)
	}
	if user.Role != models.RoleSpecialist {
		return invalidInput("user %d is not a specialist", userID)
	}
	return nil
}

// DeleteRequest removes a request together with its comments. Only managers
// may call it.
func (s *requestService) DeleteRequest(ctx context.Context, caller models.Caller, requestID int64) error {
	log := logger.FromContext(ctx)

	if err := requireRole(caller, RequestDeleteRoles...); err != nil {
		return err
	}

	current, err := s.requestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	if err = s.requestRepository.DeleteRequest(ctx, requestID); err != nil {
		log.Err(err).Str("func", "requestService.DeleteRequest").Int64("request_id", requestID).Msg("request deletion ended with error")
		return fmt.Errorf("delete request: %w", err)
	}

	s.publish(ctx, models.RequestEvent{
		Type:      models.EventRequestDeleted,
		RequestID: current.RequestID,
		ClientID:  current.ClientID,
		MasterID:  current.MasterID,
		OldStatus: current.Status,
	})

	log.Info().
		Str("func", "requestService.DeleteRequest").
		Int64("request_id", requestID).
		Int64("deleted_by", caller.UserID).
		Msg("repair request deleted")
	return nil
}

// publish hands event to the publisher. Failures are logged only.
func (s *requestService) publish(ctx context.Context, event models.RequestEvent) {
	if s.publisher == nil {
		return
	}
	event.OccurredAt = s.now().UTC()

	if err := s.publisher.PublishRequestEvent(ctx, event); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "requestService.publish").
			Str("event_type", string(event.Type)).
			Int64("request_id", event.RequestID).
			Msg("failed to publish request event")
	}
}
