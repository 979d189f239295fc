package bridge

// Options represents command line options, flags take precedence over env variables
type Options struct {
	URL         string `short:"u" long:"url" env:"LAMBDA_API_URL" description:"backend JSON-RPC url"`
	Timeout     string `short:"t" long:"timeout" env:"HTTP_TIMEOUT" description:"backend request timeout in milliseconds (default: 30000)"`
	Name        string `long:"name" env:"SERVER_NAME" description:"server name (default: Lambda-MCP-Bridge)"`
	Version     string `long:"version" env:"SERVER_VERSION" description:"server version (default: 1.0.0)"`
	Description string `long:"description" env:"SERVER_DESCRIPTION" description:"server description"`
	NoIntercept bool   `long:"no-intercept" env:"BRIDGE_NO_INTERCEPT" description:"disable raw tool argument interception"`
	ConfigURL   string `short:"c" long:"config" env:"BRIDGE_CONFIG" description:"config file URL (yaml or json)"`
	Trace       bool   `long:"trace" env:"BRIDGE_TRACE" description:"export backend call traces to stderr"`

	Args struct {
		URL string `positional-arg-name:"url" description:"backend JSON-RPC url"`
	} `positional-args:"yes"`
}

// BackendURL returns --url or the positional url
func (o *Options) BackendURL() string {
	if o.URL != "" {
		return o.URL
	}
	return o.Args.URL
}
