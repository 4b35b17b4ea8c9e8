package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	oasyaml "github.com/oasdiff/yaml"
	"gopkg.in/yaml.v3"
)

// Document is a loaded OpenAPI document ready for parsing.
// Swagger 2.0 inputs are converted to the OpenAPI 3 model on load; Swagger
// reports whether that happened.
type Document struct {
	T       *openapi3.T
	Version string
	Swagger bool
	// Order holds the document order of mapping keys
	Order *KeyOrder
}

type loadConfig struct {
	validate bool
}

// Option configures document loading
type Option func(*loadConfig)

// WithValidation validates the document against the OpenAPI 3 rules after loading.
func WithValidation(enabled bool) Option {
	return func(c *loadConfig) { c.validate = enabled }
}

// LoadDocument loads an OpenAPI document from a local file path or an HTTP(S) URL
func LoadDocument(ctx context.Context, input string, opts ...Option) (*Document, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		data, err := openapi3.DefaultReadFromURI(openapi3.NewLoader(), u)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", input, err)
		}
		return loadData(ctx, data, u, opts...)
	}
	// Fallback to reading from filesystem path
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	return loadData(ctx, data, &url.URL{Path: filepath.ToSlash(abs)}, opts...)
}

// LoadData loads an OpenAPI or Swagger document from YAML or JSON bytes.
func LoadData(ctx context.Context, data []byte, opts ...Option) (*Document, error) {
	return loadData(ctx, data, nil, opts...)
}

func loadData(ctx context.Context, data []byte, location *url.URL, opts ...Option) (*Document, error) {
	cfg := loadConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	version, swagger, err := detectVersion(&root)
	if err != nil {
		return nil, err
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.Context = ctx

	var doc *openapi3.T
	if swagger {
		doc, err = convertSwagger(data)
		if err != nil {
			return nil, err
		}
		if cfg.validate {
			if err := loader.ResolveRefsIn(doc, location); err != nil {
				return nil, fmt.Errorf("resolve converted document: %w", err)
			}
		}
	} else {
		if location != nil {
			doc, err = loader.LoadFromDataWithPath(data, location)
		} else {
			doc, err = loader.LoadFromData(data)
		}
		if err != nil {
			return nil, fmt.Errorf("load document: %w", err)
		}
	}

	if cfg.validate {
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("invalid document: %w", err)
		}
	}

	return &Document{
		T:       doc,
		Version: version,
		Swagger: swagger,
		Order:   NewKeyOrder(&root, swagger),
	}, nil
}

// ValidateDocument loads and validates an OpenAPI document
func ValidateDocument(ctx context.Context, input string) error {
	_, err := LoadDocument(ctx, input, WithValidation(true))
	return err
}

func detectVersion(root *yaml.Node) (version string, swagger bool, err error) {
	n := root
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return "", false, errors.New("document root is not a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "openapi":
			return n.Content[i+1].Value, false, nil
		case "swagger":
			v := n.Content[i+1].Value
			if !strings.HasPrefix(v, "2.") {
				return "", false, fmt.Errorf("unsupported swagger version %q", v)
			}
			return v, true, nil
		}
	}
	return "", false, errors.New("document declares neither openapi nor swagger version")
}

const defaultMediaType = "application/json"

func convertSwagger(data []byte) (*openapi3.T, error) {
	raw, err := oasyaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode swagger document: %w", err)
	}
	var doc2 openapi2.T
	if err := json.Unmarshal(raw, &doc2); err != nil {
		return nil, fmt.Errorf("decode swagger document: %w", err)
	}
	// without consumes the converter files body parameters under */*
	if len(doc2.Consumes) == 0 {
		doc2.Consumes = []string{defaultMediaType}
	}
	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("convert swagger document: %w", err)
	}
	return doc3, nil
}
