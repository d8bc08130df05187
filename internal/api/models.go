package api

import (
	"net/http"
	"strconv"

	"github.com/kishore-rajkumar/task-manager-api/internal/domain"
)

// ListTasksQuery holds the raw query parameters of GET /tasks.
type ListTasksQuery struct {
	Status string `validate:"omitempty,max=256"`
	Limit  string `validate:"omitempty,number"`

	hasStatus bool
}

// parseListTasksQuery reads the listing parameters from the request URL.
// A status parameter that is present but empty still counts as a filter.
func parseListTasksQuery(r *http.Request) ListTasksQuery {
	values := r.URL.Query()
	_, hasStatus := values["status"]
	return ListTasksQuery{
		Status:    values.Get("status"),
		Limit:     values.Get("limit"),
		hasStatus: hasStatus,
	}
}

// Filter converts the validated query into a domain.ListFilter.
// A limit that overflows int or is below one fails with domain.ErrInvalidLimit.
func (q ListTasksQuery) Filter() (domain.ListFilter, error) {
	var opts []domain.ListOption
	if q.hasStatus {
		opts = append(opts, domain.WithStatus(q.Status))
	}
	if q.Limit != "" {
		n, err := strconv.Atoi(q.Limit)
		if err != nil {
			return domain.ListFilter{}, domain.ErrInvalidLimit
		}
		opts = append(opts, domain.WithLimit(n))
	}

	filter := domain.NewListFilter(opts...)
	if err := filter.Validate(); err != nil {
		return domain.ListFilter{}, err
	}
	return filter, nil
}
