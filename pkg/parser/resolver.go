package parser

import (
	"slices"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Container is a fixed location of named components inside a document
type Container string

const (
	ContainerSchemas       Container = "components/schemas"
	ContainerParameters    Container = "components/parameters"
	ContainerRequestBodies Container = "components/requestBodies"
	ContainerResponses     Container = "components/responses"
	ContainerHeaders       Container = "components/headers"

	// Swagger 2.0 containers
	ContainerDefinitions       Container = "definitions"
	ContainerSwaggerParameters Container = "parameters"
	ContainerSwaggerResponses  Container = "responses"
)

// Ref builds the canonical reference to name inside c.
func (c Container) Ref(name string) string {
	return "#/" + string(c) + "/" + jsonpointer.Escape(name)
}

func (c Container) tokens() []string {
	return strings.Split(string(c), "/")
}

// ResolveName extracts <name> from a reference of the form #/<container>/<name>
// for any of the given containers. External references, nested pointers and
// unknown containers fail with a *MalformedReferenceError.
func ResolveName(ref string, containers ...Container) (string, error) {
	frag, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return "", &MalformedReferenceError{Ref: ref}
	}
	p, err := jsonpointer.New(frag)
	if err != nil {
		return "", &MalformedReferenceError{Ref: ref, Cause: err}
	}
	tokens := p.DecodedTokens()
	for _, c := range containers {
		ct := c.tokens()
		if len(tokens) != len(ct)+1 || !slices.Equal(tokens[:len(ct)], ct) {
			continue
		}
		if name := tokens[len(ct)]; name != "" {
			return name, nil
		}
	}
	return "", &MalformedReferenceError{Ref: ref}
}

// ResolveSchemaName resolves a schema reference in either the OpenAPI 3 or the Swagger 2.0 container
func ResolveSchemaName(ref string) (string, error) {
	return ResolveName(ref, ContainerSchemas, ContainerDefinitions)
}
