package onboarding

// Endpoint is one AS2 delivery target.
type Endpoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// InterfaceConfig holds the protocol/auth/connection settings a partner
// supplies for machine-to-machine exchange. Every field is optional at
// the type level; which ones are actually required depends on the
// protocol and auth type (see RequiredFields).
type InterfaceConfig struct {
	Protocol           string            `json:"protocol,omitempty"`
	AuthType           string            `json:"authType,omitempty"`
	Direction          string            `json:"direction,omitempty"`
	Endpoints          []Endpoint        `json:"endpoints,omitempty"`
	Username           string            `json:"username,omitempty"`
	Password           string            `json:"password,omitempty"`
	HTTPHeaderName     string            `json:"httpHeaderName,omitempty"`
	APIKeyValue        string            `json:"apiKeyValue,omitempty"`
	IdentityKeyID      string            `json:"identityKeyId,omitempty"`
	Host               string            `json:"host,omitempty"`
	Port               string            `json:"port,omitempty"`
	CharacterEncoding  string            `json:"characterEncoding,omitempty"`
	SourcePath         string            `json:"sourcePath,omitempty"`
	SupportFormatType  string            `json:"supportFormatType,omitempty"`
	FileNamePattern    string            `json:"fileNamePattern,omitempty"`
	ArchivalPath       string            `json:"archivalPath,omitempty"`
	AdditionalSettings map[string]string `json:"additionalSettings,omitempty"`
}

// Protocols understood by the validation rules.
const (
	ProtocolSFTP  = "sftp"
	ProtocolFTP   = "ftp"
	ProtocolHTTPS = "https"
	ProtocolAS2   = "as2"
)

// Auth types. Which ones are selectable is protocol-dependent and
// enforced by the client forms; the rule engine only derives required
// fields from whatever combination it is handed.
const (
	AuthNone             = "none"
	AuthBasic            = "basic"
	AuthAPIKey           = "apiKey"
	AuthIdentityKey      = "identityKey"
	AuthBasicIdentityKey = "basicIdentityKey"
)

func (c InterfaceConfig) fieldValue(name string) string {
	switch name {
	case "username":
		return c.Username
	case "password":
		return c.Password
	case "httpHeaderName":
		return c.HTTPHeaderName
	case "apiKeyValue":
		return c.APIKeyValue
	case "identityKeyId":
		return c.IdentityKeyID
	case "host":
		return c.Host
	case "port":
		return c.Port
	case "sourcePath":
		return c.SourcePath
	case "supportFormatType":
		return c.SupportFormatType
	case "fileNamePattern":
		return c.FileNamePattern
	case "archivalPath":
		return c.ArchivalPath
	}
	return ""
}
