package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/spf13/viper"

	"github.com/spechtlabs/ecsview/pkg/models"
	"github.com/spechtlabs/ecsview/pkg/service/api"
)

// httpClient is shared so connections are reused. Request deadlines come
// from the context.
var httpClient = &http.Client{}

func doRequestAndDecode[T any](ctx context.Context, method, uri string, body io.Reader, expectedStatus ...int) (*T, int, humane.Error) {
	okStatus := map[int]bool{}
	if len(expectedStatus) == 0 {
		okStatus[http.StatusOK] = true
	}
	for _, code := range expectedStatus {
		okStatus[code] = true
	}

	reqURL := getServerAddr() + uri

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, 0, humane.Wrap(err, "failed to create request", "this indicates a bug in the CLI; please report it")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, humane.Wrap(err, "failed to perform request",
			fmt.Sprintf("ensure the ecsview server is running and reachable at %s", getServerAddr()),
			"set --host/--port or server.host/server.port to point at the server",
		)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, humane.Wrap(err, "failed to read response body", "the server may have closed the connection unexpectedly")
	}

	if !okStatus[resp.StatusCode] {
		return nil, resp.StatusCode, handleAPIError(resp.StatusCode, respBytes)
	}

	var result T
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, resp.StatusCode, humane.Wrap(err, "failed to decode response body", "the server returned an unexpected response format")
	}

	return &result, resp.StatusCode, nil
}

// handleAPIError turns an error response of the API back into a humane.Error.
func handleAPIError(status int, body []byte) humane.Error {
	var errBody models.ErrorResponse
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		return humane.Wrap(errBody.AsHumaneError(), fmt.Sprintf("HTTP %d", status), "check the error details for more information")
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(status)
	}
	return humane.New(fmt.Sprintf("HTTP %d: %s", status, text), "the server returned an unexpected error format")
}

// isRetryable reports whether a request that ended with status is worth repeating.
// Transport errors have status 0.
func isRetryable(status int) bool {
	return status == 0 || status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func getServerAddr() string {
	host := strings.TrimSuffix(viper.GetString("server.host"), "/")
	port := viper.GetInt("server.port")

	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		if u, err := url.Parse(host); err == nil && u.Port() == "" && port != 0 {
			u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
			return u.String()
		}
		return host
	}

	scheme := "http"
	if port == 443 {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(host, strconv.Itoa(port)))
}

func clustersURI() string {
	return api.EcsRoute + api.ClustersRoute
}

func clusterDescriptionsURI(account, region string, include []string) string {
	uri := api.EcsRoute + strings.NewReplacer(
		":account", url.PathEscape(account),
		":region", url.PathEscape(region),
	).Replace(api.ClusterDescriptionsRoute)

	if len(include) > 0 {
		query := url.Values{}
		query.Set("include", strings.Join(include, ","))
		uri += "?" + query.Encode()
	}

	return uri
}
