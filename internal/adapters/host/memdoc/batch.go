package memdoc

import (
	"context"
	"errors"
	"fmt"

	"github.com/irebix/LayerVisSync/internal/domain"
	"github.com/irebix/LayerVisSync/internal/domain/layer"
)

// writeAction sets one attribute of one layer and can restore the value it
// replaced.
type writeAction struct {
	doc       *Document
	directive layer.Directive
	prev      any
}

func (a *writeAction) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.doc.mu.Lock()
	defer a.doc.mu.Unlock()

	n, ok := a.doc.nodes[a.directive.Target]
	if !ok {
		return fmt.Errorf("layer %d: %w", a.directive.Target, domain.ErrNotFound)
	}
	a.prev = n.get(a.directive.Field)
	n.set(a.directive.Field, a.directive.Value)
	return nil
}

func (a *writeAction) Rollback(_ context.Context) error {
	a.doc.mu.Lock()
	defer a.doc.mu.Unlock()

	n, ok := a.doc.nodes[a.directive.Target]
	if !ok {
		return fmt.Errorf("layer %d: %w", a.directive.Target, domain.ErrNotFound)
	}
	n.set(a.directive.Field, a.prev)
	return nil
}

func (a *writeAction) Description() string { return a.directive.String() }

// prepare validates directives and turns them into journal actions. Nothing
// is applied when any directive is invalid.
func (d *Document) prepare(directives []layer.Directive) ([]*writeAction, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var errs []error
	actions := make([]*writeAction, 0, len(directives))
	for i, dir := range directives {
		if _, ok := d.nodes[dir.Target]; !ok {
			errs = append(errs, fmt.Errorf("directive %d: layer %d: %w", i, dir.Target, domain.ErrNotFound))
			continue
		}
		if err := checkValue(dir); err != nil {
			errs = append(errs, fmt.Errorf("directive %d: %w", i, err))
			continue
		}
		actions = append(actions, &writeAction{doc: d, directive: dir})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return actions, nil
}

func checkValue(dir layer.Directive) error {
	switch dir.Field {
	case layer.FieldVisible:
		if _, ok := dir.Value.(bool); !ok {
			return domain.NewValidationError(string(dir.Field), fmt.Sprintf("want bool, got %T", dir.Value))
		}
	case layer.FieldTag:
		if _, ok := dir.Value.(string); !ok {
			return domain.NewValidationError(string(dir.Field), fmt.Sprintf("want string, got %T", dir.Value))
		}
	default:
		return domain.NewValidationError("field", fmt.Sprintf("unknown field %q", dir.Field))
	}
	return nil
}

// get and set require d.mu.
func (n *node) get(f layer.Field) any {
	switch f {
	case layer.FieldVisible:
		return n.visible
	case layer.FieldTag:
		return n.tag
	default:
		return nil
	}
}

func (n *node) set(f layer.Field, v any) {
	switch f {
	case layer.FieldVisible:
		n.visible, _ = v.(bool)
	case layer.FieldTag:
		n.tag, _ = v.(string)
	}
}
