package catalog

import "fmt"

// NotFoundError indicates that the addressed category or product does not
// exist.
type NotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

// DuplicateError indicates that a write would create a second resource with
// the same identifying value.
type DuplicateError struct {
	Resource string
	Field    string
	Value    any
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s: %v already exists", e.Resource, e.Field, e.Value)
}

// ValidationError indicates malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StorageError indicates that an uploaded file could not be stored.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func categoryNotFound(id int64) error {
	return &NotFoundError{Resource: "Category", Field: "categoryId", Value: id}
}

func productNotFound(id int64) error {
	return &NotFoundError{Resource: "Product", Field: "productId", Value: id}
}

func duplicateProduct(name string) error {
	return &DuplicateError{Resource: "Product", Field: "productName", Value: name}
}
