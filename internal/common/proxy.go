package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	OK                     int = 200
	BAD_REQUEST            int = 400
	UNAUTHORIZED           int = 401
	FORBIDDEN              int = 403
	DATA_NOT_FOUND         int = 404
	METHOD_NOT_ALLOWED     int = 405
	UNSUPPORTED_MEDIA_TYPE int = 415
	RATE_LIMIT_EXCEEDED    int = 429
	INTERNAL_SERVER_ERROR  int = 500
	BAD_GATEWAY            int = 502
	SERVICE_UNAVAILABLE    int = 503
	GATEWAY_TIMEOUT        int = 504
)

var messages = map[int]string{
	OK:                     "OK",
	BAD_REQUEST:            "Bad request",
	UNAUTHORIZED:           "Unauthorized",
	FORBIDDEN:              "Forbidden",
	DATA_NOT_FOUND:         "Data not found",
	METHOD_NOT_ALLOWED:     "Method not allowed",
	UNSUPPORTED_MEDIA_TYPE: "Unsupported media type",
	RATE_LIMIT_EXCEEDED:    "Rate limit exceeded",
	INTERNAL_SERVER_ERROR:  "Internal server error",
	BAD_GATEWAY:            "Bad gateway",
	SERVICE_UNAVAILABLE:    "Service unavailable",
	GATEWAY_TIMEOUT:        "Gateway timeout",
}

type Proxy struct {
	header      map[string]string
	client      http.Client
	rateLimiter *RateLimiter
}

func NewProxy(header map[string]string, restrictions []Restriction) Proxy {
	return Proxy{header, http.Client{Timeout: 30 * time.Second}, NewRateLimiter(restrictions)}
}

// Get requests the provided url with the optional query parameters,
// indicating if the request is vital. The request will be performed
// depending on the status of the rate limiter
func (proxy *Proxy) Get(rawurl string, params url.Values, vital bool) []byte {

	if len(params) > 0 {
		rawurl += "?" + params.Encode()
	}
	request, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		log.Error().Str("url", rawurl).Msg("Could not create GET request")
		return nil
	}
	return proxy.do(request, vital)
}

// Post sends the provided payload as a JSON body. Posts are always
// treated as vital: they carry moderation actions
func (proxy *Proxy) Post(rawurl string, payload any) []byte {

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Str("url", rawurl).Msg("Could not encode POST payload")
		return nil
	}
	request, err := http.NewRequest(http.MethodPost, rawurl, bytes.NewReader(body))
	if err != nil {
		log.Error().Str("url", rawurl).Msg("Could not create POST request")
		return nil
	}
	request.Header.Set("Content-Type", "application/json")
	return proxy.do(request, true)
}

func (proxy *Proxy) do(request *http.Request, vital bool) []byte {

	// ask for permission to execute the request
	// and wait if necessary
	if !proxy.rateLimiter.Allowed(vital) {
		log.Warn().Msg("Rate limiter is not allowing the request")
		return nil
	}

	for key, value := range proxy.header {
		request.Header.Set(key, value)
	}

	res, err := proxy.client.Do(request)
	if err != nil {
		log.Error().Err(err).Str("url", request.URL.Redacted()).Msg("Could not perform request")
		return nil
	}
	defer res.Body.Close()

	// Check if the status of the request is understood
	message, ok := messages[res.StatusCode]
	if !ok {
		log.Error().Int("status", res.StatusCode).Msg("Status code of request is not understood")
		return nil
	}
	log.Debug().Msg(fmt.Sprintf("%d %s", res.StatusCode, message))

	switch res.StatusCode {
	case OK:
		stream, err := io.ReadAll(res.Body)
		if err != nil {
			log.Debug().Str("url", request.URL.Redacted()).Msg("Could not extract the response")
			return nil
		}
		return stream
	case RATE_LIMIT_EXCEEDED:
		proxy.rateLimiter.ReceivedRateLimit()
		return nil
	default:
		return nil
	}
}
