package paymentprovider

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// PaymentType is the coarse category a buyer picks at checkout.
type PaymentType string

const (
	PaymentTypeMobile   PaymentType = "mobile"
	PaymentTypeBank     PaymentType = "bank"
	PaymentTypeCard     PaymentType = "card"
	PaymentTypeTransfer PaymentType = "transfer"
)

// categoryKeywords lists the substrings a method id must contain to belong to a category.
var categoryKeywords = map[PaymentType][]string{
	PaymentTypeMobile:   {"mobile", "momo", "money"},
	PaymentTypeBank:     {"bank"},
	PaymentTypeCard:     {"card"},
	PaymentTypeTransfer: {"transfer"},
}

func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentTypeMobile, PaymentTypeBank, PaymentTypeCard, PaymentTypeTransfer}
}

func ParsePaymentType(s string) (PaymentType, bool) {
	t := PaymentType(s)
	_, ok := categoryKeywords[t]
	return t, ok
}

func (t PaymentType) String() string {
	return string(t)
}

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Matches reports whether the method id falls into the category. Unknown categories never match.
func (m PaymentMethod) Matches(t PaymentType) bool {
	for _, keyword := range categoryKeywords[t] {
		if strings.Contains(m.ID, keyword) {
			return true
		}
	}
	return false
}

type PaymentProvider struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Logo               string          `json:"logo"`
	SupportedCountries []string        `json:"supported_countries"`
	SupportedMethods   []PaymentMethod `json:"supported_methods"`
}

// SupportsCountry is an exact, case-sensitive match.
func (p *PaymentProvider) SupportsCountry(code string) bool {
	return slices.Contains(p.SupportedCountries, code)
}

func (p *PaymentProvider) OffersType(t PaymentType) bool {
	for _, m := range p.SupportedMethods {
		if m.Matches(t) {
			return true
		}
	}
	return false
}

func (p *PaymentProvider) MethodsOfType(t PaymentType) []PaymentMethod {
	methods := make([]PaymentMethod, 0, len(p.SupportedMethods))
	for _, m := range p.SupportedMethods {
		if m.Matches(t) {
			methods = append(methods, m)
		}
	}
	return methods
}

func (p *PaymentProvider) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("provider id is required"))
	}
	if len(p.SupportedCountries) == 0 {
		errs = append(errs, fmt.Errorf("provider %q has no supported countries", p.ID))
	}
	if len(p.SupportedMethods) == 0 {
		errs = append(errs, fmt.Errorf("provider %q has no supported methods", p.ID))
	}
	countries := make(map[string]struct{}, len(p.SupportedCountries))
	for _, code := range p.SupportedCountries {
		if _, dup := countries[code]; dup {
			errs = append(errs, fmt.Errorf("provider %q lists country %q twice", p.ID, code))
		}
		countries[code] = struct{}{}
	}
	methods := make(map[string]struct{}, len(p.SupportedMethods))
	for i, m := range p.SupportedMethods {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("provider %q method #%d has no id", p.ID, i))
			continue
		}
		if _, dup := methods[m.ID]; dup {
			errs = append(errs, fmt.Errorf("provider %q lists method %q twice", p.ID, m.ID))
		}
		methods[m.ID] = struct{}{}
	}
	return errors.Join(errs...)
}

func (p PaymentProvider) clone() PaymentProvider {
	p.SupportedCountries = slices.Clone(p.SupportedCountries)
	p.SupportedMethods = slices.Clone(p.SupportedMethods)
	return p
}

// Resolve returns, in table order, every provider that supports the country and offers
// at least one method of the requested category. The result is never nil.
func Resolve(providers []PaymentProvider, countryCode string, method PaymentType) []PaymentProvider {
	eligible := make([]PaymentProvider, 0)
	for i := range providers {
		p := &providers[i]
		if !p.SupportsCountry(countryCode) || !p.OffersType(method) {
			continue
		}
		eligible = append(eligible, p.clone())
	}
	return eligible
}
