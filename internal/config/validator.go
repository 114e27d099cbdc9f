package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	mgerrors "github.com/mediagraph/mediagraph/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	nodeIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("node_id", func(fl validator.FieldLevel) bool {
			return nodeIDPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate performs schema and cross-field validation on a workflow
// document: struct-tag checks, unique node ids, and edge endpoints that
// reference declared nodes. Cycle detection happens later, when the engine
// levels the active subset.
func Validate(doc *Document) error {
	if doc == nil {
		return mgerrors.NewValidationError("workflow", "document is nil", nil)
	}

	if err := validatorInstance().Struct(doc); err != nil {
		return convertValidationError(err)
	}

	nodeIndex := make(map[string]struct{}, len(doc.Nodes))
	for i, node := range doc.Nodes {
		if _, exists := nodeIndex[node.ID]; exists {
			return mgerrors.NewValidationError(fmt.Sprintf("nodes[%d].id", i), fmt.Sprintf("duplicate node id %q", node.ID), nil)
		}
		nodeIndex[node.ID] = struct{}{}
	}

	for i, edge := range doc.Edges {
		if _, ok := nodeIndex[edge.Source]; !ok {
			return mgerrors.NewValidationError(fmt.Sprintf("edges[%d].source", i), fmt.Sprintf("references unknown node %q", edge.Source), nil)
		}
		if _, ok := nodeIndex[edge.Target]; !ok {
			return mgerrors.NewValidationError(fmt.Sprintf("edges[%d].target", i), fmt.Sprintf("references unknown node %q", edge.Target), nil)
		}
		if edge.Source == edge.Target {
			return mgerrors.NewValidationError(fmt.Sprintf("edges[%d]", i), fmt.Sprintf("node %q depends on itself", edge.Source), nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := strings.ToLower(strings.TrimPrefix(ve.StructNamespace(), "Document."))
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return mgerrors.NewValidationError(field, msg, err)
	}

	return mgerrors.NewValidationError("workflow", err.Error(), err)
}
