package api

import (
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"onuze-cli/auth"
	"onuze-cli/types"
)

const dialTimeout = 10 * time.Second
const fastReqTimeout = 30 * time.Second
const slowReqTimeout = 5 * time.Minute

const apiBasePath = "/api/v1"

type Api struct{}

var cloudApiHost string

var Client types.ApiClient = (*Api)(nil)

func init() {
	if host := os.Getenv("ONUZE_API_HOST"); host != "" {
		cloudApiHost = strings.TrimSuffix(host, "/")
	} else if os.Getenv("ONUZE_ENV") == "development" {
		cloudApiHost = "http://localhost:8000"
	} else {
		cloudApiHost = "https://api.onuze.com"
	}
}

func GetApiHost() string {
	return cloudApiHost
}

// SetApiHost overrides the configured host. Used by tests.
func SetApiHost(host string) {
	cloudApiHost = strings.TrimSuffix(host, "/")
}

func GetApiBase() string {
	return cloudApiHost + apiBasePath
}

// WsBaseUrl derives the push channel endpoint from the configured host.
func WsBaseUrl() string {
	base := cloudApiHost
	if strings.HasPrefix(base, "https://") {
		base = "wss://" + strings.TrimPrefix(base, "https://")
	} else if strings.HasPrefix(base, "http://") {
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws/notifications/"
}

type authenticatedTransport struct {
	underlyingTransport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and adds the auth header
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	auth.SetAuthHeader(req)
	return t.underlyingTransport.RoundTrip(req)
}

var netDialer = &net.Dialer{
	Timeout: dialTimeout,
}

var unauthenticatedClient = &http.Client{
	Transport: &http.Transport{
		Dial: netDialer.Dial,
	},
	Timeout: fastReqTimeout,
}

var authenticatedFastClient = &http.Client{
	Transport: &authenticatedTransport{
		underlyingTransport: &http.Transport{
			Dial: netDialer.Dial,
		},
	},
	Timeout: fastReqTimeout,
}

// uploads can take a while
var authenticatedSlowClient = &http.Client{
	Transport: &authenticatedTransport{
		underlyingTransport: &http.Transport{
			Dial: netDialer.Dial,
		},
	},
	Timeout: slowReqTimeout,
}
