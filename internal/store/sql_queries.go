package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	userColumns = `id, name, email, password_hash, created_at, updated_at`
	taskColumns = `id, description, completed, owner_id, created_at, updated_at`

	createUser = `INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1;`

	findUserByID = `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;`

	setUserAvatar = `UPDATE users
		SET avatar = $1, updated_at = now()
		WHERE id = $2;`

	getUserAvatar = `SELECT avatar
		FROM users
		WHERE id = $1;`

	deleteUserTasks  = `DELETE FROM tasks WHERE owner_id = $1;`
	deleteUserTokens = `DELETE FROM user_tokens WHERE user_id = $1;`
	deleteUser       = `DELETE FROM users
		WHERE id = $1
		RETURNING ` + userColumns + `;`

	createTask = `INSERT INTO tasks (description, completed, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + taskColumns + `;`

	getTask = `SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND owner_id = $2;`

	deleteTask = `DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns + `;`

	addToken = `INSERT INTO user_tokens (user_id, token)
		VALUES ($1, $2);`

	hasToken = `SELECT EXISTS (
			SELECT 1 FROM user_tokens WHERE user_id = $1 AND token = $2
		);`

	deleteToken = `DELETE FROM user_tokens
		WHERE user_id = $1 AND token = $2;`

	deleteAllTokens = `DELETE FROM user_tokens
		WHERE user_id = $1;`

	deleteOtherTokens = `DELETE FROM user_tokens
		WHERE user_id = $1 AND token <> $2;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// taskSortColumns maps the client-facing sort fields onto columns.
// Only names listed here can ever reach ORDER BY.
var taskSortColumns = map[models.TaskSortField]string{
	models.SortByCreatedAt:   "created_at",
	models.SortByUpdatedAt:   "updated_at",
	models.SortByDescription: "description",
	models.SortByCompleted:   "completed",
}

func splitColumns(columns string) []string {
	parts := strings.Split(columns, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// buildListTasksQuery renders a bounded page of one owner's tasks:
//
//	SELECT ... FROM tasks WHERE owner_id = $1 [AND completed = $2]
//	ORDER BY [<col> <dir>,] id ASC LIMIT n [OFFSET m]
//
// The id tie-break keeps paging deterministic whatever the sort column.
func buildListTasksQuery(ctx context.Context, query models.TaskQuery) (string, []any, error) {
	builder := psql.
		Select(splitColumns(taskColumns)...).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"owner_id": query.OwnerID})

	if query.Completed != nil {
		builder = builder.Where(sq.Eq{"completed": *query.Completed})
	}

	if query.Sort != nil {
		if column, ok := taskSortColumns[query.Sort.Field]; ok {
			direction := "ASC"
			if query.Sort.Desc {
				direction = "DESC"
			}
			builder = builder.OrderBy(column + " " + direction)
		}
	}
	builder = builder.OrderBy("id ASC")

	if query.Limit > 0 {
		builder = builder.Limit(query.Limit)
	}
	if query.Skip > 0 {
		builder = builder.Offset(query.Skip)
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildUpdateTaskQuery renders a partial owner-scoped update that returns the
// resulting row. updated_at is always bumped.
func buildUpdateTaskQuery(ctx context.Context, ownerID, taskID int64, update models.TaskUpdate) (string, []any, error) {
	builder := psql.
		Update(models.Task{}.TableName()).
		Set("updated_at", sq.Expr("now()"))

	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
	}

	sqlQuery, args, err := builder.
		Where(sq.Eq{"id": taskID, "owner_id": ownerID}).
		Suffix("RETURNING " + taskColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildUpdateUserQuery renders a partial profile update that returns the
// resulting row. updated_at is always bumped.
func buildUpdateUserQuery(ctx context.Context, userID int64, update models.UserUpdate) (string, []any, error) {
	builder := psql.
		Update(models.User{}.TableName()).
		Set("updated_at", sq.Expr("now()"))

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.PasswordHash != nil {
		builder = builder.Set("password_hash", *update.PasswordHash)
	}

	sqlQuery, args, err := builder.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}
