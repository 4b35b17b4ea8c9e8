package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"hello", "hello"},
		{"cobrança", "cobranca"},
		{"negociação", "negociacao"},
		{"café", "cafe"},
		{"São Paulo", "Sao Paulo"},
		{"résumé", "resume"},
		{"naïve", "naive"},
		{"piñata", "pinata"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, RemoveAccents(tt.input), tt.input)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"   ", nil},
		{"pet", []string{"pet"}},
		{"getUserById", []string{"get", "User", "By", "Id"}},
		{"XMLHttpRequest", []string{"XML", "Http", "Request"}},
		{"HELLO_WORLD", []string{"HELLO", "WORLD"}},
		{"company-slug", []string{"company", "slug"}},
		{"X-Rate-Limit", []string{"X", "Rate", "Limit"}},
		{"v2Items", []string{"v2", "Items"}},
		{"OAuth2Token", []string{"O", "Auth2", "Token"}},
		{"configurações gerais", []string{"configuracoes", "gerais"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Words(tt.input), tt.input)
	}
}

func TestCases(t *testing.T) {
	tests := []struct {
		input    string
		pascal   string
		camel    string
		snake    string
		kebab    string
		constant string
	}{
		{"", "", "", "", "", ""},
		{"listPets", "ListPets", "listPets", "list_pets", "list-pets", "LIST_PETS"},
		{"XMLHttpRequest", "XmlHttpRequest", "xmlHttpRequest", "xml_http_request", "xml-http-request", "XML_HTTP_REQUEST"},
		{"company_slug", "CompanySlug", "companySlug", "company_slug", "company-slug", "COMPANY_SLUG"},
		{"X-Rate-Limit", "XRateLimit", "xRateLimit", "x_rate_limit", "x-rate-limit", "X_RATE_LIMIT"},
		{"notificações", "Notificacoes", "notificacoes", "notificacoes", "notificacoes", "NOTIFICACOES"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.pascal, Pascal(tt.input))
			assert.Equal(t, tt.camel, Camel(tt.input))
			assert.Equal(t, tt.snake, Snake(tt.input))
			assert.Equal(t, tt.kebab, Kebab(tt.input))
			assert.Equal(t, tt.constant, Constant(tt.input))
		})
	}
}
