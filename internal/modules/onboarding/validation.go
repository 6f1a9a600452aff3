package onboarding

import (
	"fmt"

	"github.com/partnergate/onboarding-backend/internal/apperr"
)

// fileTransferFields are required for every sftp/ftp configuration
// regardless of auth type.
var fileTransferFields = []string{
	"host", "port", "sourcePath", "supportFormatType", "fileNamePattern", "archivalPath",
}

var fieldMessages = map[string]string{
	"host":              "Host is required",
	"port":              "Port is required",
	"sourcePath":        "Source path is required",
	"supportFormatType": "Support Format type is required",
	"fileNamePattern":   "File name pattern is required",
	"archivalPath":      "Archival path is required",
	"username":          "Username is required",
	"password":          "Password is required",
	"identityKeyId":     "Identity Key is required",
	"httpHeaderName":    "HTTP header name is required",
	"apiKeyValue":       "API key is required",
}

// RequiredFields returns the scalar fields an interface configuration
// must carry for the given protocol/auth-type combination. The AS2
// endpoint-list rule is structural and handled by
// ValidateInterfaceConfig directly. An unset protocol requires nothing.
func RequiredFields(protocol, authType string) []string {
	var fields []string
	switch protocol {
	case ProtocolSFTP, ProtocolFTP:
		fields = append(fields, fileTransferFields...)
		if authType == AuthBasic || authType == AuthBasicIdentityKey {
			fields = append(fields, "username", "password")
		}
		if authType == AuthIdentityKey || authType == AuthBasicIdentityKey {
			fields = append(fields, "identityKeyId")
		}
	case ProtocolHTTPS:
		switch authType {
		case AuthBasic:
			fields = append(fields, "username", "password")
		case AuthAPIKey:
			fields = append(fields, "httpHeaderName", "apiKeyValue")
		}
	}
	return fields
}

// ValidateInterfaceConfig checks the configuration against the
// protocol/auth-type rule table and reports every missing field in one
// pass, each tagged with its field path.
func ValidateInterfaceConfig(cfg InterfaceConfig) error {
	vErr := &apperr.ValidationError{}

	for _, name := range RequiredFields(cfg.Protocol, cfg.AuthType) {
		if cfg.fieldValue(name) == "" {
			vErr.Add(name, fieldMessages[name])
		}
	}

	if cfg.Protocol == ProtocolAS2 {
		if len(cfg.Endpoints) == 0 {
			vErr.Add("endpoints", "At least one endpoint is required")
		}
		for i, ep := range cfg.Endpoints {
			if ep.Name == "" {
				vErr.Add(fmt.Sprintf("endpoints.%d.name", i), "Endpoint name is required")
			}
			if ep.URL == "" {
				vErr.Add(fmt.Sprintf("endpoints.%d.url", i), "Endpoint URL is required")
			}
		}
	}

	return vErr.OrNil()
}
