package document

// upgradeOAS2 rewrites an OAS 2.0 (Swagger) document into the 3.x shape in
// place, so the rest of the engine only ever deals with one dialect:
//
//   - definitions become components.schemas (order preserved)
//   - body/formData parameters become a requestBody keyed by the effective
//     consumes media types
//   - response schemas become content entries keyed by the effective produces
//     media types
//   - inline parameter types (type/format/items/enum) become parameter schemas
//
// $ref strings are left untouched: "#/definitions/X" and
// "#/components/schemas/X" both resolve to the symbolic name X.
func upgradeOAS2(doc *Document, log Logger) {
	if doc.Components == nil {
		doc.Components = &Components{}
	}
	if doc.Components.Schemas == nil && doc.Definitions != nil {
		doc.Components.Schemas = doc.Definitions
		doc.Components.SchemaOrder = doc.DefinitionOrder
		log.Debug("upgraded definitions to component schemas", "count", len(doc.Definitions))
	}

	for _, path := range doc.PathOrder {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			op := item.operationFor(method)
			if op == nil {
				continue
			}
			upgradeOperation(doc, op)
		}
	}
}

// upgradeOperation rewrites one operation's parameters and responses.
func upgradeOperation(doc *Document, op *Operation) {
	consumes := firstNonEmpty(op.Consumes, doc.Consumes, []string{"application/json"})
	produces := firstNonEmpty(op.Produces, doc.Produces, []string{"application/json"})

	kept := op.Parameters[:0]
	for _, param := range op.Parameters {
		switch param.In {
		case "body":
			op.RequestBody = &RequestBody{
				Description:  param.Description,
				Required:     param.Required,
				Content:      contentFor(consumes, param.Schema),
				ContentOrder: consumes,
			}
		case "formData":
			// Form fields fold into a single object body schema, shared by
			// every consumes media type.
			if op.RequestBody == nil {
				form := &Schema{Type: "object", Properties: make(map[string]*Schema)}
				op.RequestBody = &RequestBody{
					Content:      contentFor(consumes, form),
					ContentOrder: consumes,
				}
			}
			if form := op.RequestBody.Content[op.RequestBody.ContentOrder[0]].Schema; form != nil {
				if form.Properties == nil {
					form.Properties = make(map[string]*Schema)
				}
				form.Properties[param.Name] = inlineParamSchema(param)
				form.PropertyOrder = append(form.PropertyOrder, param.Name)
				if param.Required {
					form.Required = append(form.Required, param.Name)
				}
			}
		default:
			if param.Schema == nil && param.Type != "" {
				param.Schema = inlineParamSchema(param)
			}
			kept = append(kept, param)
		}
	}
	op.Parameters = kept

	for _, status := range op.ResponseOrder {
		resp := op.Responses[status]
		if resp == nil || resp.Schema == nil || resp.Content != nil {
			continue
		}
		resp.Content = contentFor(produces, resp.Schema)
		resp.ContentOrder = produces
		resp.Schema = nil
	}
}

// inlineParamSchema lifts OAS 2.0 inline parameter typing into a Schema.
func inlineParamSchema(param *Parameter) *Schema {
	s := &Schema{
		Type:   param.Type,
		Format: param.Format,
		Enum:   param.Enum,
	}
	if param.Items != nil {
		s.Items = param.Items
	}
	return s
}

// contentFor builds a content map assigning the same schema to every media type.
func contentFor(mediaTypes []string, schema *Schema) map[string]*MediaType {
	content := make(map[string]*MediaType, len(mediaTypes))
	for _, mt := range mediaTypes {
		content[mt] = &MediaType{Schema: schema}
	}
	return content
}

// firstNonEmpty returns the first non-empty string slice.
func firstNonEmpty(candidates ...[]string) []string {
	for _, c := range candidates {
		if len(c) > 0 {
			return c
		}
	}
	return nil
}
