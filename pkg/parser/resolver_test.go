package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		containers []Container
		want       string
		wantErr    bool
	}{
		{name: "schema", ref: "#/components/schemas/Pet", containers: []Container{ContainerSchemas}, want: "Pet"},
		{name: "definitions", ref: "#/definitions/Pet", containers: []Container{ContainerSchemas, ContainerDefinitions}, want: "Pet"},
		{name: "escaped name", ref: "#/components/schemas/a~1b~0c", containers: []Container{ContainerSchemas}, want: "a/b~c"},
		{name: "parameter", ref: "#/components/parameters/page", containers: []Container{ContainerParameters}, want: "page"},
		{name: "wrong container", ref: "#/components/parameters/page", containers: []Container{ContainerSchemas}, wantErr: true},
		{name: "external", ref: "common.yaml#/components/schemas/Pet", containers: []Container{ContainerSchemas}, wantErr: true},
		{name: "nested", ref: "#/components/schemas/Pet/properties/id", containers: []Container{ContainerSchemas}, wantErr: true},
		{name: "empty name", ref: "#/components/schemas/", containers: []Container{ContainerSchemas}, wantErr: true},
		{name: "container only", ref: "#/components/schemas", containers: []Container{ContainerSchemas}, wantErr: true},
		{name: "empty", ref: "", containers: []Container{ContainerSchemas}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveName(tt.ref, tt.containers...)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedReference)
				var e *MalformedReferenceError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.ref, e.Ref)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContainerRef(t *testing.T) {
	assert.Equal(t, "#/components/parameters/page", ContainerParameters.Ref("page"))
	assert.Equal(t, "#/definitions/a~1b", ContainerDefinitions.Ref("a/b"))

	name, err := ResolveSchemaName(ContainerSchemas.Ref("x/y"))
	require.NoError(t, err)
	assert.Equal(t, "x/y", name)
}
