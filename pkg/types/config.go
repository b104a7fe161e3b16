package types

// Config holds the externally supplied endpoints and OAuth2 client
// details. Nothing in the core hard-codes a URL; everything comes from
// config.yaml or flags.
type Config struct {
	DataDir      string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	AuthURL      string `json:"auth_url" yaml:"auth_url" mapstructure:"auth_url"`
	TokenURL     string `json:"token_url" yaml:"token_url" mapstructure:"token_url"`
	DataURL      string `json:"data_url" yaml:"data_url" mapstructure:"data_url"`
	ClientID     string `json:"client_id" yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `json:"client_secret" yaml:"client_secret" mapstructure:"client_secret"`
	RedirectURI  string `json:"redirect_uri" yaml:"redirect_uri" mapstructure:"redirect_uri"`
}

// ValidateSync checks that every field needed to reach the data endpoint
// is present. It returns a sentinel error from this package on failure.
func (c Config) ValidateSync() error {
	if c.TokenURL == "" {
		return ErrTokenURLEmpty
	}
	if c.DataURL == "" {
		return ErrDataURLEmpty
	}
	if c.ClientID == "" {
		return ErrClientIDEmpty
	}
	if c.RedirectURI == "" {
		return ErrRedirectURIEmpty
	}
	return nil
}

// ValidateAuth checks that every field needed to run the authorization
// flow is present.
func (c Config) ValidateAuth() error {
	if c.AuthURL == "" {
		return ErrAuthURLEmpty
	}
	if c.TokenURL == "" {
		return ErrTokenURLEmpty
	}
	if c.ClientID == "" {
		return ErrClientIDEmpty
	}
	if c.RedirectURI == "" {
		return ErrRedirectURIEmpty
	}
	return nil
}
