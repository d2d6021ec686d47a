package apidocs

import (
	"fmt"
	"strings"
	"time"

	"github.com/Gobd/apidocs/rules"
	"github.com/getkin/kin-openapi/openapi3"
)

// InfoOptions holds the fixed parts of every version's document metadata.
type InfoOptions struct {
	Title          string `json:"title" mapstructure:"title" yaml:"title"`
	Description    string `json:"description" mapstructure:"description" yaml:"description"`
	TermsOfService string `json:"terms_of_service" mapstructure:"terms_of_service" yaml:"terms_of_service"`
	ContactName    string `json:"contact_name" mapstructure:"contact_name" yaml:"contact_name"`
	ContactEmail   string `json:"contact_email" mapstructure:"contact_email" yaml:"contact_email"`
	ContactURL     string `json:"contact_url" mapstructure:"contact_url" yaml:"contact_url"`
	// LicenseFormat is a fmt format with a single %d verb for the year.
	LicenseFormat string `json:"license_format" mapstructure:"license_format" yaml:"license_format"`
	LicenseURL    string `json:"license_url" mapstructure:"license_url" yaml:"license_url"`
	// DeprecationNotice is appended to Description for deprecated versions.
	DeprecationNotice string `json:"deprecation_notice" mapstructure:"deprecation_notice" yaml:"deprecation_notice"`
}

// DefaultInfoOptions returns the stock metadata.
func DefaultInfoOptions() InfoOptions {
	return InfoOptions{
		Title:             "VulnerableApp",
		Description:       "Put your api info here",
		TermsOfService:    "https://www.mytechramblings.com",
		ContactName:       "mytechramblings",
		ContactEmail:      "user@example.com",
		LicenseFormat:     "Copyright %d, My Company Inc. All rights reserved.",
		DeprecationNotice: " This API version has been deprecated.",
	}
}

func (o *InfoOptions) Rules() []*rules.FieldRules {
	return []*rules.FieldRules{
		rules.Field(&o.Title, rules.Required, rules.Length(1, 200)),
		rules.Field(&o.TermsOfService, rules.URL),
		rules.Field(&o.ContactEmail, rules.Email),
		rules.Field(&o.ContactURL, rules.URL),
		rules.Field(&o.LicenseFormat, rules.Required, rules.NewStringRule(hasYearVerb, "must contain exactly one %d verb")),
		rules.Field(&o.LicenseURL, rules.URL),
	}
}

func hasYearVerb(s string) bool {
	return strings.Count(s, "%d") == 1 && strings.Count(s, "%") == 1
}

// NewInfo builds the document metadata of one API version. The license
// carries the year of now; the deprecation notice is appended only when d is
// deprecated.
func NewInfo(opts InfoOptions, d Description, now time.Time) *openapi3.Info {
	info := &openapi3.Info{
		Title:          opts.Title,
		Version:        d.Version.String(),
		Description:    opts.Description,
		TermsOfService: opts.TermsOfService,
		License: &openapi3.License{
			Name: fmt.Sprintf(opts.LicenseFormat, now.Year()),
			URL:  opts.LicenseURL,
		},
	}
	if opts.ContactName != "" || opts.ContactEmail != "" || opts.ContactURL != "" {
		info.Contact = &openapi3.Contact{
			Name:  opts.ContactName,
			Email: opts.ContactEmail,
			URL:   opts.ContactURL,
		}
	}

	if d.Deprecated {
		info.Description += opts.DeprecationNotice
	}

	return info
}
