package resolver

import (
	"github.com/erraggy/oasgen/document"
	"github.com/erraggy/oasgen/internal/severity"
	"github.com/erraggy/oasgen/ir"
)

// Operations resolves every operation that passes the filters into a
// descriptor, in document order. An operation whose resolution fails (a
// discriminated union with an unresolvable member) is skipped with an
// error-level issue; the remaining operations still resolve.
func (r *Resolver) Operations(filters Filters) []ir.OperationDescriptor {
	r.Registry()

	var descriptors []ir.OperationDescriptor
	for _, ref := range r.doc.Operations() {
		op := ref.Operation
		if !filters.Allows(op.Tags, ref.Path, ref.Method, ref.ID()) {
			continue
		}

		desc, err := r.resolveOperation(ref)
		if err != nil {
			r.report(severity.SeverityError, ref.ID(), "", err.Error())
			r.logger.Warn("skipping operation", "operation", ref.ID(), "error", err)
			continue
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors
}

// resolveOperation builds the descriptor for one operation. An operation
// without a request body still yields a descriptor with an empty variant
// list.
func (r *Resolver) resolveOperation(ref document.OperationRef) (ir.OperationDescriptor, error) {
	op := ref.Operation
	desc := ir.OperationDescriptor{
		ID:          ref.ID(),
		Path:        ref.Path,
		Method:      ref.Method,
		Tags:        op.Tags,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
	}

	for _, param := range ref.EffectiveParameters() {
		if param == nil {
			continue
		}
		pd, err := r.resolveParameter(param)
		if err != nil {
			return desc, err
		}
		switch param.In {
		case "path":
			// Path parameters are always required on the wire.
			pd.Required = true
			desc.PathParams = append(desc.PathParams, pd)
		case "query":
			desc.QueryParams = append(desc.QueryParams, pd)
		case "header":
			desc.HeaderParams = append(desc.HeaderParams, pd)
		}
	}

	if op.RequestBody != nil {
		variants, err := r.resolveContent(op.RequestBody.Content, op.RequestBody.ContentOrder)
		if err != nil {
			return desc, err
		}
		desc.Request = variants
	}

	for _, status := range op.ResponseOrder {
		resp := op.Responses[status]
		if resp == nil {
			continue
		}
		variants, err := r.resolveContent(resp.Content, resp.ContentOrder)
		if err != nil {
			return desc, err
		}
		desc.Responses = append(desc.Responses, ir.ResponseDescriptor{
			Status:      status,
			Description: resp.Description,
			Variants:    variants,
		})
	}

	return desc, nil
}

// resolveParameter resolves one parameter's schema. A parameter without a
// schema degrades to an "any" shape rather than failing the operation.
func (r *Resolver) resolveParameter(param *document.Parameter) (ir.ParameterDescriptor, error) {
	pd := ir.ParameterDescriptor{
		Name:     param.Name,
		Required: param.Required,
	}
	tree, err := r.resolveTree(param.Schema)
	if err != nil {
		return pd, err
	}
	pd.Tree = tree
	return pd, nil
}

// resolveContent resolves each media type entry into a body variant, in
// source order. A media type without a schema yields a variant with a nil
// tree.
func (r *Resolver) resolveContent(content map[string]*document.MediaType, order []string) ([]ir.BodyVariant, error) {
	var variants []ir.BodyVariant
	for _, contentType := range order {
		media := content[contentType]
		if media == nil {
			continue
		}
		variant := ir.BodyVariant{ContentType: contentType}
		if media.Schema != nil {
			tree, err := r.resolveTree(media.Schema)
			if err != nil {
				return nil, err
			}
			variant.Tree = tree
		}
		variants = append(variants, variant)
	}
	return variants, nil
}
