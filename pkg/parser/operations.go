package parser

import (
	"fmt"
	"log/slog"
	"mime"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/blimu-dev/schema-ir/pkg/ir"
	"github.com/blimu-dev/schema-ir/pkg/openapi"
	"github.com/getkin/kin-openapi/openapi3"
)

// requestBodyParam is the name of the synthesized body parameter
const requestBodyParam = "requestBody"

// methodOrder is used for path items whose source order is unknown
var methodOrder = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Extractor walks the paths of a document and produces operations.
type Extractor struct {
	doc     *openapi.Document
	lowerer *Lowerer
	logger  *slog.Logger

	include []*regexp.Regexp
	exclude []*regexp.Regexp

	// params is the shared parameter table, keyed by canonical reference
	params map[string]ir.ReferenceParam
}

// NewExtractor creates an Extractor for doc. Operations are kept or dropped
// according to the include and exclude tag patterns (see WithTagFilter).
func NewExtractor(doc *openapi.Document, lowerer *Lowerer, logger *slog.Logger, include, exclude []*regexp.Regexp) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		doc:     doc,
		lowerer: lowerer,
		logger:  logger,
		include: include,
		exclude: exclude,
	}
}

// Extract returns every operation of the document in document order.
func (e *Extractor) Extract() ([]ir.Operation, error) {
	if err := e.buildParamTable(); err != nil {
		return nil, err
	}
	if e.doc.T.Paths == nil {
		return nil, nil
	}

	items := e.doc.T.Paths.Map()
	var ops []ir.Operation
	for _, path := range openapi.Keys(e.doc.Order, "/paths", items) {
		item := items[path]
		if item == nil {
			continue
		}
		itemPtr := openapi.Pointer("paths", path)

		shared, err := e.collectParams(item.Parameters, openapi.Join(itemPtr, "parameters"), nil)
		if err != nil {
			return nil, err
		}

		for _, method := range e.methods(itemPtr, item) {
			op := item.GetOperation(strings.ToUpper(method))
			if op.OperationID == "" {
				return nil, &MissingOperationIDError{Method: strings.ToUpper(method), Path: path}
			}
			if !shouldIncludeOperation(op.Tags, e.include, e.exclude) {
				e.logger.Debug("operation filtered by tags", "method", method, "path", path)
				continue
			}
			out, err := e.operation(path, method, op, openapi.Join(itemPtr, method), shared)
			if err != nil {
				return nil, err
			}
			ops = append(ops, out)
		}
	}
	return ops, nil
}

// buildParamTable lowers every shared parameter once, up front.
func (e *Extractor) buildParamTable() error {
	e.params = map[string]ir.ReferenceParam{}
	c := e.doc.T.Components
	if c == nil {
		return nil
	}
	for _, name := range openapi.Keys(e.doc.Order, "/components/parameters", c.Parameters) {
		pr := c.Parameters[name]
		if pr == nil || pr.Value == nil {
			continue
		}
		ptr := openapi.Pointer("components", "parameters", name)
		p, err := e.lowerParam(pr.Value, ptr)
		if err != nil {
			return err
		}
		ref := ContainerParameters.Ref(name)
		e.params[ref] = ir.ReferenceParam{Param: p, Ref: ref}
	}
	return nil
}

// methods returns the lower case methods declared on item, in document order
// when known.
func (e *Extractor) methods(itemPtr string, item *openapi3.PathItem) []string {
	present := make([]string, 0, len(methodOrder))
	for _, m := range methodOrder {
		if item.GetOperation(strings.ToUpper(m)) != nil {
			present = append(present, m)
		}
	}
	if !e.doc.Order.Has(itemPtr) {
		return present
	}
	return e.doc.Order.Sort(itemPtr, present)
}

func (e *Extractor) operation(path, method string, op *openapi3.Operation, ptr string, shared []ir.Param) (ir.Operation, error) {
	params, err := e.collectParams(op.Parameters, openapi.Join(ptr, "parameters"), shared)
	if err != nil {
		return ir.Operation{}, fmt.Errorf("operation %s: %w", op.OperationID, err)
	}

	body, err := e.requestBody(op.RequestBody, openapi.Join(ptr, "requestBody"))
	if err != nil {
		return ir.Operation{}, fmt.Errorf("operation %s: %w", op.OperationID, err)
	}
	if body != nil {
		params = append(params, *body)
	}

	responses, err := e.responses(op.Responses, openapi.Join(ptr, "responses"))
	if err != nil {
		return ir.Operation{}, fmt.Errorf("operation %s: %w", op.OperationID, err)
	}

	return ir.Operation{
		OperationID: op.OperationID,
		Method:      ir.HTTPMethod(strings.ToUpper(method)),
		Path:        path,
		Deprecated:  op.Deprecated,
		Params:      params,
		Description: op.Description,
		Summary:     op.Summary,
		Tags:        slices.Clone(op.Tags),
		Responses:   responses,
	}, nil
}

// collectParams appends the parameters in refs to a copy of base. A parameter
// with the same location and name as one in base replaces it in place.
func (e *Extractor) collectParams(refs openapi3.Parameters, ptr string, base []ir.Param) ([]ir.Param, error) {
	out := slices.Clone(base)
	for i, pr := range refs {
		if pr == nil {
			continue
		}
		var p ir.Param
		if pr.Ref != "" {
			rp, err := e.lookupParam(pr.Ref)
			if err != nil {
				return nil, err
			}
			p = rp.Param
		} else {
			if pr.Value == nil {
				continue
			}
			var err error
			p, err = e.lowerParam(pr.Value, openapi.Join(ptr, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
		}

		idx := slices.IndexFunc(out[:len(base)], func(x ir.Param) bool {
			return x.Kind == p.Kind && x.Name == p.Name
		})
		if idx >= 0 {
			out[idx] = p
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (e *Extractor) lookupParam(ref string) (ir.ReferenceParam, error) {
	name, err := ResolveName(ref, ContainerParameters, ContainerSwaggerParameters)
	if err != nil {
		return ir.ReferenceParam{}, err
	}
	rp, ok := e.params[ContainerParameters.Ref(name)]
	if !ok {
		return ir.ReferenceParam{}, &UnresolvedParameterReferenceError{Ref: ref}
	}
	return rp, nil
}

func (e *Extractor) lowerParam(p *openapi3.Parameter, ptr string) (ir.Param, error) {
	var kind ir.ParamKind
	switch p.In {
	case openapi3.ParameterInQuery:
		kind = ir.ParamQuery
	case openapi3.ParameterInHeader:
		kind = ir.ParamHeader
	case openapi3.ParameterInPath:
		kind = ir.ParamPath
	case openapi3.ParameterInCookie:
		kind = ir.ParamCookie
	default:
		return ir.Param{}, fmt.Errorf("parameter %q at %s: unsupported location %q", p.Name, ptr, p.In)
	}

	var t ir.AnyType = ir.Unknown{}
	switch {
	case p.Schema != nil:
		lowered, err := e.lowerer.Lower(p.Schema, openapi.Join(ptr, "schema"))
		if err != nil {
			return ir.Param{}, err
		}
		t = lowered
	case len(p.Content) > 0:
		contentPtr := openapi.Join(ptr, "content")
		mt := openapi.Keys(e.doc.Order, contentPtr, p.Content)[0]
		lowered, err := e.mediaType(p.Content[mt], openapi.Join(contentPtr, mt))
		if err != nil {
			return ir.Param{}, err
		}
		t = lowered
	}

	return ir.Param{
		Name:        p.Name,
		Kind:        kind,
		Required:    p.Required,
		Type:        t,
		Description: p.Description,
	}, nil
}

// requestBody synthesizes the body parameter from the first JSON media type.
// It returns nil when the body has no JSON representation.
func (e *Extractor) requestBody(rb *openapi3.RequestBodyRef, ptr string) (*ir.Param, error) {
	if rb == nil {
		return nil, nil
	}
	body := rb.Value
	if rb.Ref != "" {
		name, err := ResolveName(rb.Ref, ContainerRequestBodies)
		if err != nil {
			return nil, err
		}
		c := e.doc.T.Components
		if c == nil || c.RequestBodies[name] == nil || c.RequestBodies[name].Value == nil {
			return nil, &UnresolvedReferenceError{Ref: rb.Ref, Container: ContainerRequestBodies}
		}
		body = c.RequestBodies[name].Value
		ptr = openapi.Pointer("components", "requestBodies", name)
	}
	if body == nil {
		return nil, nil
	}

	contentPtr := openapi.Join(ptr, "content")
	for _, mt := range openapi.Keys(e.doc.Order, contentPtr, body.Content) {
		if !isJSONMediaType(mt) {
			continue
		}
		t, err := e.mediaType(body.Content[mt], openapi.Join(contentPtr, mt))
		if err != nil {
			return nil, err
		}
		return &ir.Param{
			Name:        requestBodyParam,
			Kind:        ir.ParamBody,
			Required:    body.Required,
			Type:        t,
			Description: body.Description,
		}, nil
	}
	e.logger.Debug("request body has no JSON media type", "pointer", ptr)
	return nil, nil
}

func (e *Extractor) responses(rs *openapi3.Responses, ptr string) ([]ir.APIResponse, error) {
	if rs == nil {
		return nil, nil
	}
	m := rs.Map()
	out := make([]ir.APIResponse, 0, len(m))
	for _, code := range openapi.Keys(e.doc.Order, ptr, m) {
		rr := m[code]
		if rr == nil {
			continue
		}
		status, err := parseStatus(code)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", openapi.Join(ptr, code), err)
		}

		resp, rptr := rr.Value, openapi.Join(ptr, code)
		if rr.Ref != "" {
			name, err := ResolveName(rr.Ref, ContainerResponses, ContainerSwaggerResponses)
			if err != nil {
				return nil, err
			}
			c := e.doc.T.Components
			if c == nil || c.Responses[name] == nil || c.Responses[name].Value == nil {
				return nil, &UnresolvedReferenceError{Ref: rr.Ref, Container: ContainerResponses}
			}
			resp, rptr = c.Responses[name].Value, openapi.Pointer("components", "responses", name)
		}
		if resp == nil {
			continue
		}

		r, err := e.response(resp, rptr)
		if err != nil {
			return nil, err
		}
		r.Status = status
		out = append(out, r)
	}
	return out, nil
}

func (e *Extractor) response(resp *openapi3.Response, ptr string) (ir.APIResponse, error) {
	var r ir.APIResponse
	if resp.Description != nil {
		r.Description = *resp.Description
	}

	headersPtr := openapi.Join(ptr, "headers")
	for _, name := range openapi.Keys(e.doc.Order, headersPtr, resp.Headers) {
		t, err := e.header(resp.Headers[name], openapi.Join(headersPtr, name))
		if err != nil {
			return ir.APIResponse{}, err
		}
		r.Headers = append(r.Headers, ir.ResponseHeader{Name: name, Type: t})
	}

	contentPtr := openapi.Join(ptr, "content")
	for _, mt := range openapi.Keys(e.doc.Order, contentPtr, resp.Content) {
		t, err := e.mediaType(resp.Content[mt], openapi.Join(contentPtr, mt))
		if err != nil {
			return ir.APIResponse{}, err
		}
		r.BodyAlternatives = append(r.BodyAlternatives, ir.BodyAlternative{MimeType: mt, Type: t})
	}
	return r, nil
}

func (e *Extractor) header(hr *openapi3.HeaderRef, ptr string) (ir.AnyType, error) {
	if hr == nil {
		return ir.Unknown{}, nil
	}
	h := hr.Value
	if hr.Ref != "" {
		name, err := ResolveName(hr.Ref, ContainerHeaders)
		if err != nil {
			return nil, err
		}
		c := e.doc.T.Components
		if c == nil || c.Headers[name] == nil || c.Headers[name].Value == nil {
			return nil, &UnresolvedReferenceError{Ref: hr.Ref, Container: ContainerHeaders}
		}
		h, ptr = c.Headers[name].Value, openapi.Pointer("components", "headers", name)
	}
	if h == nil || h.Schema == nil {
		return ir.Unknown{}, nil
	}
	return e.lowerer.Lower(h.Schema, openapi.Join(ptr, "schema"))
}

// mediaType lowers the schema of a media type object, Unknown when absent
func (e *Extractor) mediaType(m *openapi3.MediaType, ptr string) (ir.AnyType, error) {
	if m == nil || m.Schema == nil {
		return ir.Unknown{}, nil
	}
	return e.lowerer.Lower(m.Schema, openapi.Join(ptr, "schema"))
}

// isJSONMediaType accepts application/json and structured +json types,
// ignoring media type parameters.
func isJSONMediaType(s string) bool {
	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// parseStatus parses a response key: "default", a status class like "2XX" or a code
func parseStatus(code string) (ir.ResponseStatus, error) {
	if code == "default" {
		return ir.ResponseStatus{Default: true}, nil
	}
	if len(code) == 3 && strings.EqualFold(code[1:], "XX") && code[0] >= '1' && code[0] <= '5' {
		return ir.ResponseStatus{Code: int(code[0]-'0') * 100, Range: true}, nil
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return ir.ResponseStatus{}, fmt.Errorf("invalid response status %q", code)
	}
	return ir.ResponseStatus{Code: n}, nil
}
