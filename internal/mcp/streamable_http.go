package mcp

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/keystore/internal/errors"
)

const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable_http"
)

const (
	authHeader    = "Authorization"
	bearerPrefix  = "Bearer "
	unauthorized  = "unauthorized"
	headerMissing = "authorization header is required"
)

// NewStreamableHTTPHandler creates a streamable HTTP handler guarded by a bearer token.
// secret_get 会返回明文，因此 HTTP 传输必须配置 token。
func NewStreamableHTTPHandler(server *mcp.Server, authToken string) (http.Handler, error) {
	if server == nil {
		return nil, errors.New(errors.CodeInternal, "mcp server is nil", nil)
	}
	if authToken == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "mcp streamable http auth token is required", nil)
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
	return requireBearer(handler, authToken), nil
}

func requireBearer(next http.Handler, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		received, present := bearerToken(req)
		if !present {
			http.Error(w, headerMissing, http.StatusUnauthorized)
			return
		}
		if subtle.ConstantTimeCompare([]byte(received), []byte(token)) != 1 {
			http.Error(w, unauthorized, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// bearerToken 返回 Authorization 头中的 bearer token；present 表示头是否存在。
// 非 Bearer 方案返回空 token，由调用方按不匹配处理。
func bearerToken(req *http.Request) (token string, present bool) {
	auth := strings.TrimSpace(req.Header.Get(authHeader))
	if auth == "" {
		return "", false
	}
	if !strings.HasPrefix(auth, bearerPrefix) {
		return "", true
	}
	return strings.TrimPrefix(auth, bearerPrefix), true
}
