package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
	// LangQueryParam overrides Accept-Language when present.
	LangQueryParam = "lang"
)

// supported is ordered; the first tag is the matcher fallback.
var supported = []language.Tag{language.English, language.Portuguese, language.Dutch}

var matcher = language.NewMatcher(supported)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msgs, ok := t.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// T translates key with the default translator.
func T(key, locale string) string {
	return GetTranslator().Translate(key, locale)
}

// Match returns the supported base language closest to the given
// preferences, each of which may be a tag ("pt-BR") or an
// Accept-Language header value. The first non-empty preference wins.
func Match(preferences ...string) string {
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, confidence := matcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		base, _ := supported[idx].Base()
		return base.String()
	}
	return DefaultLocale
}

// IsSupported reports whether locale is one of the translated languages.
func IsSupported(locale string) bool {
	_, ok := getDefaultMessages()[locale]
	return ok
}

// GetLocale resolves the request locale from ?lang=, then Accept-Language.
func GetLocale(c *gin.Context) string {
	return Match(c.Query(LangQueryParam), c.GetHeader(AcceptLanguageHeader))
}

func getDefaultMessages() map[string]map[string]string {
	return messages
}

var messages = map[string]map[string]string{
	"en": {
		"error.invalid_request":      "Invalid request",
		"error.invalid_request_body": "Invalid request body",
		"error.invalid_order_input":  "Invalid order input",
		"error.internal_error":       "An unexpected error occurred",
		"error.unauthorized":         "Unauthorized",
		"error.invalid_credentials":  "Invalid client credentials",
		"error.api_key_required":     "API key is required",
		"error.invalid_api_key":      "Invalid API key",
		"error.not_found":            "Not found",
		"error.rate_limit_exceeded":  "Too many requests, please try again later",
		"error.invalid_token":        "Invalid or expired token",
		"error.token_required":       "Authentication token is required",
		"error.timeout":              "Request timed out",
		"error.service_unavailable":  "Service unavailable",
		"success.quote_calculated":   "Quote calculated successfully",
		"success.token_issued":       "Access token issued",
		"label.welcome":              "Hello! Welcome to our delivery system.",
		"label.summary_title":        "Order Summary",
		"label.subtotal":             "Subtotal",
		"label.discount":             "Discount",
		"label.tax":                  "Tax",
		"label.delivery_fee":         "Delivery fee",
		"label.free_delivery":        "Free delivery!",
		"label.total":                "Total",
		"label.unit_price":           "Unit price",
		"label.quantity":             "Quantity",
		"label.discount_percent":     "Discount (%)",
		"label.distance_km":          "Distance (km)",
		"label.calculate":            "Calculate",
	},
	"pt": {
		"error.invalid_request":      "Requisição inválida",
		"error.invalid_request_body": "Corpo da requisição inválido",
		"error.invalid_order_input":  "Dados do pedido inválidos",
		"error.internal_error":       "Ocorreu um erro inesperado",
		"error.unauthorized":         "Não autorizado",
		"error.invalid_credentials":  "Credenciais do cliente inválidas",
		"error.api_key_required":     "Chave de API é obrigatória",
		"error.invalid_api_key":      "Chave de API inválida",
		"error.not_found":            "Não encontrado",
		"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
		"error.invalid_token":        "Token inválido ou expirado",
		"error.token_required":       "Token de autenticação é obrigatório",
		"error.timeout":              "Tempo da requisição esgotado",
		"error.service_unavailable":  "Serviço indisponível",
		"success.quote_calculated":   "Orçamento calculado com sucesso",
		"success.token_issued":       "Token de acesso emitido",
		"label.welcome":              "Olá! Bem-vindo(a) ao nosso sistema de delivery.",
		"label.summary_title":        "Resumo do Pedido",
		"label.subtotal":             "Subtotal",
		"label.discount":             "Desconto",
		"label.tax":                  "Imposto",
		"label.delivery_fee":         "Taxa de Entrega",
		"label.free_delivery":        "Frete Grátis!",
		"label.total":                "Total a Pagar",
		"label.unit_price":           "Preço unitário",
		"label.quantity":             "Quantidade",
		"label.discount_percent":     "Desconto (%)",
		"label.distance_km":          "Distância (km)",
		"label.calculate":            "Calcular",
	},
	"nl": {
		"error.invalid_request":      "Ongeldig verzoek",
		"error.invalid_request_body": "Ongeldige aanvraag body",
		"error.invalid_order_input":  "Ongeldige bestelgegevens",
		"error.internal_error":       "Er is een onverwachte fout opgetreden",
		"error.unauthorized":         "Niet geautoriseerd",
		"error.invalid_credentials":  "Ongeldige clientgegevens",
		"error.api_key_required":     "API-sleutel is vereist",
		"error.invalid_api_key":      "Ongeldige API-sleutel",
		"error.not_found":            "Niet gevonden",
		"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
		"error.invalid_token":        "Ongeldig of verlopen token",
		"error.token_required":       "Authenticatietoken is vereist",
		"error.timeout":              "Time-out van verzoek",
		"error.service_unavailable":  "Dienst niet beschikbaar",
		"success.quote_calculated":   "Offerte succesvol berekend",
		"success.token_issued":       "Toegangstoken uitgegeven",
		"label.welcome":              "Hallo! Welkom bij ons bezorgsysteem.",
		"label.summary_title":        "Besteloverzicht",
		"label.subtotal":             "Subtotaal",
		"label.discount":             "Korting",
		"label.tax":                  "Btw",
		"label.delivery_fee":         "Bezorgkosten",
		"label.free_delivery":        "Gratis bezorging!",
		"label.total":                "Totaal",
		"label.unit_price":           "Stukprijs",
		"label.quantity":             "Aantal",
		"label.discount_percent":     "Korting (%)",
		"label.distance_km":          "Afstand (km)",
		"label.calculate":            "Berekenen",
	},
}
