// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-repair-desk/models"
)

var (
	userColumns = []string{"user_id", "full_name", "phone", "login", "password", "user_type"}

	requestColumns = []string{
		"request_id", "start_date", "climate_tech_type", "climate_tech_model",
		"problem_description", "request_status", "completion_date",
		"repair_parts", "master_id", "client_id",
	}

	commentColumns = []string{"comment_id", "message", "master_id", "request_id", "created_at"}
)

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert("users").
		Columns("full_name", "phone", "login", "password", "user_type").
		Values(user.FullName, user.Phone, user.Login, user.Password, user.Role).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildSelectUsersQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	q := b.Select(userColumns...).From("users")
	if where != nil {
		q = q.Where(where)
	}
	return q.OrderBy("user_id").ToSql()
}

// buildUpdateUserQuery returns an UPDATE touching only the non-nil fields of
// update. The caller must reject an empty update beforehand.
func buildUpdateUserQuery(b sq.StatementBuilderType, userID int64, update models.UserUpdate) (string, []any, error) {
	q := b.Update("users")

	if update.FullName != nil {
		q = q.Set("full_name", *update.FullName)
	}
	if update.Phone != nil {
		q = q.Set("phone", *update.Phone)
	}
	if update.Login != nil {
		q = q.Set("login", *update.Login)
	}
	if update.Password != nil {
		q = q.Set("password", *update.Password)
	}
	if update.Role != nil {
		q = q.Set("user_type", *update.Role)
	}

	return q.Where(sq.Eq{"user_id": userID}).ToSql()
}

func buildInsertRequestQuery(b sq.StatementBuilderType, request models.RepairRequest) (string, []any, error) {
	return b.Insert("requests").
		Columns(
			"start_date", "climate_tech_type", "climate_tech_model",
			"problem_description", "request_status", "completion_date",
			"repair_parts", "master_id", "client_id",
		).
		Values(
			request.StartDate, request.EquipmentType, request.EquipmentModel,
			request.ProblemDescription, request.Status, request.CompletionDate,
			request.RepairParts, request.MasterID, request.ClientID,
		).
		Suffix("RETURNING request_id").
		ToSql()
}

// requestFilterCondition translates a filter into WHERE conditions. A status
// filter matches every stored spelling of that status.
func requestFilterCondition(filter models.RequestFilter) sq.And {
	cond := sq.And{}
	if filter.ClientID != nil {
		cond = append(cond, sq.Eq{"client_id": *filter.ClientID})
	}
	if filter.Status != nil {
		cond = append(cond, sq.Eq{"request_status": filter.Status.Aliases()})
	}
	if filter.RequestID != nil {
		cond = append(cond, sq.Eq{"request_id": *filter.RequestID})
	}
	return cond
}

func buildListRequestsQuery(b sq.StatementBuilderType, filter models.RequestFilter) (string, []any, error) {
	q := b.Select(requestColumns...).From("requests")
	if cond := requestFilterCondition(filter); len(cond) > 0 {
		q = q.Where(cond)
	}
	q = q.OrderBy("request_id")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit)).Offset(uint64(max(filter.Offset(), 0)))
	}
	return q.ToSql()
}

func buildCountRequestsQuery(b sq.StatementBuilderType, filter models.RequestFilter) (string, []any, error) {
	q := b.Select("COUNT(*)").From("requests")
	if cond := requestFilterCondition(filter); len(cond) > 0 {
		q = q.Where(cond)
	}
	return q.ToSql()
}

// buildUpdateRequestQuery returns an UPDATE touching only the fields present
// in update. A Null optional clears the column.
func buildUpdateRequestQuery(b sq.StatementBuilderType, requestID int64, update models.RequestUpdate) (string, []any, error) {
	q := b.Update("requests")

	if update.Status != nil {
		q = q.Set("request_status", *update.Status)
	}
	if update.MasterID.Set {
		q = q.Set("master_id", update.MasterID.Ptr())
	}
	if update.RepairParts.Set {
		q = q.Set("repair_parts", update.RepairParts.Ptr())
	}
	if update.CompletionDate.Set {
		q = q.Set("completion_date", update.CompletionDate.Ptr())
	}

	return q.Where(sq.Eq{"request_id": requestID}).ToSql()
}

func buildInsertCommentQuery(b sq.StatementBuilderType, comment models.Comment) (string, []any, error) {
	return b.Insert("comments").
		Columns("message", "master_id", "request_id", "created_at").
		Values(comment.Message, comment.MasterID, comment.RequestID, comment.CreatedAt).
		Suffix("RETURNING comment_id").
		ToSql()
}

func buildSelectCommentsQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select(commentColumns...).
		From("comments").
		Where(where).
		OrderBy("created_at", "comment_id").
		ToSql()
}

func buildCountByStatusQuery(b sq.StatementBuilderType, status models.Status) (string, []any, error) {
	return b.Select("COUNT(*)").
		From("requests").
		Where(sq.Eq{"request_status": status.Aliases()}).
		ToSql()
}

func buildCompletionSpansQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("start_date", "completion_date").
		From("requests").
		Where(sq.NotEq{"completion_date": nil}).
		ToSql()
}

func buildCountByEquipmentTypeQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("climate_tech_type AS equipment_type", "COUNT(*) AS total_requests").
		From("requests").
		GroupBy("climate_tech_type").
		OrderBy("total_requests DESC", "equipment_type").
		ToSql()
}

// buildSpecialistWorkloadQuery lists every specialist, including those with
// no assigned requests.
func buildSpecialistWorkloadQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(
		"u.user_id AS specialist_id",
		"u.full_name AS specialist_name",
		"COUNT(r.request_id) AS total_assigned",
	).
		From("users u").
		LeftJoin("requests r ON r.master_id = u.user_id").
		Where(sq.Eq{"u.user_type": models.RoleSpecialist.Aliases()}).
		GroupBy("u.user_id", "u.full_name").
		OrderBy("u.user_id").
		ToSql()
}

func buildCountGroupedByStatusQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("request_status", "COUNT(*) AS total_requests").
		From("requests").
		GroupBy("request_status").
		ToSql()
}
