package validators

import "context"

// Validator checks a request model. The optional field names restrict
// validation to a subset of the model's fields; without them a default set
// is checked.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
