// Package service contains the task use cases. It sits between the HTTP
// adapter (internal/api) and the store contract (internal/store).
//
// Key components:
//
// 1. TaskRepository:
//   - Maps domain.Task to and from store.Record
//   - Composes the optional status filter and limit of a listing
//   - Lets store errors propagate unchanged
//
// 2. TaskService:
//   - Validates required input and assigns IDs on create
//   - Pins the ID on update to the one taken from the request path
//   - Raises ErrInvalidInput and ErrTaskNotFound; wraps everything else in
//     TaskServiceError so errors.Is still sees store.ErrUnavailable
//
// The service layer depends on the domain and on the store interfaces, never
// on a concrete backend.
package service
