package validators

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-task-manager/models"
)

const (
	ParamCompleted = "completed"
	ParamSortBy    = "sortBy"
	ParamLimit     = "limit"
	ParamSkip      = "skip"
)

var sortableTaskFields = map[models.TaskSortField]struct{}{
	models.SortByCreatedAt:   {},
	models.SortByUpdatedAt:   {},
	models.SortByDescription: {},
	models.SortByCompleted:   {},
}

// ParseTaskQuery turns raw listing parameters into a bounded query over the
// tasks of ownerID.
//
// completed, limit and skip are strict: bad values yield a *ValidationError.
// sortBy is lenient: anything other than "<field>:<asc|desc>" with an
// allow-listed field is ignored. A missing or zero limit means maxPageSize and
// larger values are capped to it.
func ParseTaskQuery(ownerID int64, params models.TaskListParams, maxPageSize uint64) (models.TaskQuery, error) {
	query := models.TaskQuery{
		OwnerID: ownerID,
		Limit:   maxPageSize,
	}
	verr := NewValidationError()

	switch params.Completed {
	case "":
	case "true":
		completed := true
		query.Completed = &completed
	case "false":
		completed := false
		query.Completed = &completed
	default:
		verr.Add(ParamCompleted, MsgMustBeTrueFalse)
	}

	query.Sort = parseTaskSort(params.SortBy)

	if params.Limit != "" {
		limit, err := strconv.ParseUint(params.Limit, 10, 64)
		switch {
		case err != nil:
			verr.Add(ParamLimit, MsgMustBeNonNegInt)
		case limit > 0 && limit < maxPageSize:
			query.Limit = limit
		}
	}

	// OFFSET is a Postgres bigint.
	if params.Skip != "" {
		skip, err := strconv.ParseUint(params.Skip, 10, 63)
		if err != nil {
			verr.Add(ParamSkip, MsgMustBeNonNegInt)
		}
		query.Skip = skip
	}

	if err := verr.OrNil(); err != nil {
		return models.TaskQuery{}, err
	}

	return query, nil
}

func parseTaskSort(sortBy string) *models.TaskSort {
	field, direction, ok := strings.Cut(sortBy, ":")
	if !ok {
		return nil
	}

	sortField := models.TaskSortField(field)
	if _, allowed := sortableTaskFields[sortField]; !allowed {
		return nil
	}

	switch strings.ToLower(direction) {
	case "asc":
		return &models.TaskSort{Field: sortField}
	case "desc":
		return &models.TaskSort{Field: sortField, Desc: true}
	default:
		return nil
	}
}
